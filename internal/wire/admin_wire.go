package wire

import (
	"github.com/go-chi/chi/v5"
)

func wireAdmin(r chi.Router, rt *routes) {
	h := rt.handler.Admin

	// ==================== ADMIN ROUTES ====================
	admin := rt.protected(r, rt.adminOnly)
	admin.Get("/api/admin/providers", h.ListProviders)
	admin.Put("/api/admin/providers/{id}/status", h.UpdateProviderStatus)
	admin.Get("/api/admin/customers", h.ListCustomers)
	admin.Put("/api/admin/customers/{id}/active", h.SetCustomerActive)
	admin.Get("/api/admin/bookings/{id}", h.GetBooking)
	admin.Get("/api/admin/stats", h.Stats)
}
