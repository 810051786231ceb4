package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	BookingID  uuid.UUID `db:"booking_id"`
	ServiceID  uuid.UUID `db:"service_id"`
	CustomerID uuid.UUID `db:"customer_id"`
	Rating     int       `db:"rating"` // 1-5
	Comment    *string   `db:"comment"`
}

// ReviewWithAuthor is a review joined with the reviewing customer's name.
type ReviewWithAuthor struct {
	Review
	CustomerName string `db:"customer_name"`
}
