package request

type ServiceRequest struct {
	Title       string  `json:"title" validate:"required,notblank,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Category    string  `json:"category" validate:"required,notblank,max=50"`
	City        string  `json:"city" validate:"required,notblank,max=100"`
	BasePrice   float64 `json:"base_price" validate:"required,gt=0"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type MediaRequest struct {
	URL       string  `json:"url" validate:"required,url,max=2048"`
	MediaType string  `json:"media_type" validate:"required,oneof=image video"`
	Caption   *string `json:"caption,omitempty" validate:"omitempty,max=255"`
}

type ServiceListRequest struct {
	PaginatedRequest
	Category string
	City     string
	Search   string
	MinPrice *float64
	MaxPrice *float64
}
