package wire

import (
	"github.com/go-chi/chi/v5"
)

func wireListing(r chi.Router, rt *routes) {
	h := rt.handler.Listing

	// ==================== PUBLIC ROUTES ====================
	public := r.With(rt.limit)
	public.Get("/api/services", h.ListServices)
	public.Get("/api/services/{id}", h.GetService)

	// ==================== PROVIDER ROUTES ====================
	provider := rt.protected(r, rt.providerOnly)
	provider.Get("/api/provider/services", h.ListProviderServices)
	provider.Post("/api/provider/services", h.CreateService)
	provider.Put("/api/provider/services/{id}", h.UpdateService)
	provider.Delete("/api/provider/services/{id}", h.DeleteService)
	provider.Post("/api/provider/services/{id}/media", h.AddMedia)
	provider.Delete("/api/provider/services/{id}/media/{mediaId}", h.RemoveMedia)
}
