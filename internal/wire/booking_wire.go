package wire

import (
	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, rt *routes) {
	h := rt.handler.Booking

	// ==================== CUSTOMER ROUTES ====================
	customer := rt.protected(r, rt.customerOnly)
	customer.Post("/api/bookings", h.CreateBooking)
	customer.Get("/api/customer/bookings", h.ListCustomerBookings)

	// ==================== PROVIDER ROUTES ====================
	rt.protected(r, rt.providerOnly).Get("/api/provider/bookings", h.ListProviderBookings)

	// ==================== EITHER PARTY ====================
	// Which party may perform which action is decided by the booking lifecycle.
	parties := rt.protected(r, rt.bookingActors)
	parties.Get("/api/bookings/{id}", h.GetBooking)
	parties.Post("/api/bookings/{id}/action", h.PerformAction)
}
