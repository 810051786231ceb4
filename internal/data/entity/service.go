package entity

import (
	"github.com/google/uuid"
)

// Service is a bookable offering listed by a provider.
type Service struct {
	Base
	ProviderID  uuid.UUID `db:"provider_id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	Category    string    `db:"category"`
	City        string    `db:"city"`
	BasePrice   float64   `db:"base_price"`
	IsActive    bool      `db:"is_active"`
	RatingAvg   float64   `db:"rating_avg"`
	ReviewCount int       `db:"review_count"`
}

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

type Media struct {
	BaseSimple
	ServiceID uuid.UUID `db:"service_id"`
	URL       string    `db:"url"`
	MediaType MediaType `db:"media_type"`
	Caption   *string   `db:"caption"`
	SortOrder int       `db:"sort_order"`
}

// ServiceFilter narrows public and provider listings.
type ServiceFilter struct {
	ProviderID *uuid.UUID
	Category   string
	City       string
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	ActiveOnly bool
	// ApprovedOnly hides services whose provider is not approved.
	ApprovedOnly bool
}
