package response

import (
	"time"

	"wedding-marketplace/internal/data/entity"
)

type ReviewResponse struct {
	ID           string    `json:"id"`
	BookingID    string    `json:"booking_id"`
	ServiceID    string    `json:"service_id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func ReviewToResponse(review *entity.Review, customerName string) ReviewResponse {
	return ReviewResponse{
		ID:           review.ID.String(),
		BookingID:    review.BookingID.String(),
		ServiceID:    review.ServiceID.String(),
		CustomerID:   review.CustomerID.String(),
		CustomerName: customerName,
		Rating:       review.Rating,
		Comment:      review.Comment,
		CreatedAt:    review.CreatedAt,
	}
}
