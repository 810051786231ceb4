package wire

import (
	"github.com/go-chi/chi/v5"
)

func wireProfile(r chi.Router, rt *routes) {
	h := rt.handler.Profile

	customer := rt.protected(r, rt.customerOnly)
	customer.Get("/api/customer/profile", h.GetCustomerProfile)
	customer.Put("/api/customer/profile", h.UpdateCustomerProfile)
	customer.Put("/api/customer/password", h.ChangePassword)

	provider := rt.protected(r, rt.providerOnly)
	provider.Get("/api/provider/profile", h.GetProviderProfile)
	provider.Put("/api/provider/profile", h.UpdateProviderProfile)
	provider.Put("/api/provider/password", h.ChangePassword)

	rt.protected(r, rt.adminOnly).Put("/api/admin/password", h.ChangePassword)
}
