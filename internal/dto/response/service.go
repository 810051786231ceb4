package response

import (
	"time"

	"wedding-marketplace/internal/data/entity"
)

type ServiceResponse struct {
	ID          string    `json:"id"`
	ProviderID  string    `json:"provider_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Category    string    `json:"category"`
	City        string    `json:"city"`
	BasePrice   float64   `json:"base_price"`
	IsActive    bool      `json:"is_active"`
	RatingAvg   float64   `json:"rating_avg"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type MediaResponse struct {
	ID        string           `json:"id"`
	URL       string           `json:"url"`
	MediaType entity.MediaType `json:"media_type"`
	Caption   *string          `json:"caption,omitempty"`
	SortOrder int              `json:"sort_order"`
}

type ProviderSummary struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
	City         string `json:"city"`
	Category     string `json:"category"`
}

type ServiceDetailResponse struct {
	ServiceResponse
	Media    []MediaResponse `json:"media"`
	Provider ProviderSummary `json:"provider"`
}

func ServiceToResponse(s *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID.String(),
		ProviderID:  s.ProviderID.String(),
		Title:       s.Title,
		Description: s.Description,
		Category:    s.Category,
		City:        s.City,
		BasePrice:   s.BasePrice,
		IsActive:    s.IsActive,
		RatingAvg:   s.RatingAvg,
		ReviewCount: s.ReviewCount,
		CreatedAt:   s.CreatedAt,
	}
}

func MediaToResponse(m *entity.Media) MediaResponse {
	return MediaResponse{
		ID:        m.ID.String(),
		URL:       m.URL,
		MediaType: m.MediaType,
		Caption:   m.Caption,
		SortOrder: m.SortOrder,
	}
}

func ServiceToDetailResponse(s *entity.Service, media []*entity.Media, provider *entity.Provider) ServiceDetailResponse {
	resp := ServiceDetailResponse{
		ServiceResponse: ServiceToResponse(s),
		Media:           make([]MediaResponse, 0, len(media)),
	}
	for _, m := range media {
		resp.Media = append(resp.Media, MediaToResponse(m))
	}
	if provider != nil {
		resp.Provider = ProviderSummary{
			ID:           provider.ID.String(),
			BusinessName: provider.BusinessName,
			City:         provider.City,
			Category:     provider.Category,
		}
	}
	return resp
}
