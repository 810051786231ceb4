package response

import (
	"time"

	"wedding-marketplace/internal/data/entity"
)

type BookingResponse struct {
	ID                 string                 `json:"id"`
	BookingRef         string                 `json:"booking_ref"`
	ServiceID          string                 `json:"service_id"`
	ServiceTitle       string                 `json:"service_title,omitempty"`
	ProviderID         string                 `json:"provider_id"`
	CustomerID         string                 `json:"customer_id"`
	Status             entity.BookingStatus   `json:"status"`
	EventStartDate     string                 `json:"event_start_date"`
	EventTime          string                 `json:"event_time"`
	TotalAmount        float64                `json:"total_amount"`
	CustomerName       string                 `json:"customer_name"`
	CustomerEmail      string                 `json:"customer_email"`
	CustomerPhone      string                 `json:"customer_phone"`
	GuestCount         *int                   `json:"guest_count,omitempty"`
	Venue              *string                `json:"venue,omitempty"`
	Notes              *string                `json:"notes,omitempty"`
	RejectionReason    *string                `json:"rejection_reason,omitempty"`
	CancellationReason *string                `json:"cancellation_reason,omitempty"`
	CancelledBy        *entity.Role           `json:"cancelled_by,omitempty"`
	PaymentStatus      entity.PaymentStatus   `json:"payment_status"`
	AllowedActions     []entity.BookingAction `json:"allowed_actions,omitempty"`
	StatusChangedAt    *time.Time             `json:"status_changed_at,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// BookingToResponse converts b; when viewer is set the actions it may take are included.
func BookingToResponse(b *entity.Booking, viewer *entity.Actor) BookingResponse {
	resp := BookingResponse{
		ID:                 b.ID.String(),
		BookingRef:         b.BookingRef,
		ServiceID:          b.ServiceID.String(),
		ServiceTitle:       b.ServiceTitle,
		ProviderID:         b.ProviderID.String(),
		CustomerID:         b.CustomerID.String(),
		Status:             b.Status,
		EventStartDate:     b.EventStartDate.Format("2006-01-02"),
		EventTime:          b.EventTime,
		TotalAmount:        b.TotalAmount,
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		GuestCount:         b.GuestCount,
		Venue:              b.Venue,
		Notes:              b.Notes,
		RejectionReason:    b.RejectionReason,
		CancellationReason: b.CancellationReason,
		CancelledBy:        b.CancelledBy,
		PaymentStatus:      b.PaymentStatus,
		StatusChangedAt:    b.StatusChangedAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	if viewer != nil {
		resp.AllowedActions = b.AllowedActions(*viewer)
	}
	return resp
}
