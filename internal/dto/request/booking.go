package request

type CreateBookingRequest struct {
	ServiceID      string  `json:"service_id" validate:"required,uuid"`
	EventStartDate string  `json:"event_start_date" validate:"required,datetime=2006-01-02"`
	EventTime      string  `json:"event_time" validate:"required,datetime=15:04"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	CustomerName   string  `json:"customer_name" validate:"omitempty,max=120"`
	CustomerEmail  string  `json:"customer_email" validate:"omitempty,email,max=255"`
	CustomerPhone  string  `json:"customer_phone" validate:"required,min=8,max=20"`
	GuestCount     *int    `json:"guest_count,omitempty" validate:"omitempty,gte=1,lte=100000"`
	Venue          *string `json:"venue,omitempty" validate:"omitempty,max=255"`
	Notes          *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type BookingActionRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject cancel complete"`
	Reason string `json:"reason" validate:"max=500"`
}

type BookingListRequest struct {
	PaginatedRequest
	Status string
	From   string
	To     string
	Search string
}
