package adaptor

import (
	"net/http"

	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/usecase"
	"wedding-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ListingHandler struct {
	service usecase.ListingService
	log     *zap.Logger
}

func NewListingHandler(service usecase.ListingService, log *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log.With(zap.String("handler", "listing")),
	}
}

// ListServices handles GET /api/services (public)
func (h *ListingHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ServiceListRequest{
		PaginatedRequest: pageFromQuery(r),
		Category:         query.Get("category"),
		City:             query.Get("city"),
		Search:           query.Get("search"),
		MinPrice:         utils.ParseFloat(query.Get("min_price")),
		MaxPrice:         utils.ParseFloat(query.Get("max_price")),
	}

	services, err := h.service.ListServices(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// GetService handles GET /api/services/{id} (public)
func (h *ListingHandler) GetService(w http.ResponseWriter, r *http.Request) {
	service, err := h.service.GetService(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// ListProviderServices handles GET /api/provider/services
func (h *ListingHandler) ListProviderServices(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	page := pageFromQuery(r)
	services, err := h.service.ListProviderServices(r.Context(), actor.ID, &page)
	if err != nil {
		handleServiceError(h.log, w, err, "list provider services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// CreateService handles POST /api/provider/services
func (h *ListingHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	service, err := h.service.CreateService(r.Context(), actor.ID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create service")
		return
	}

	utils.ResponseCreated(w, "Service created", service)
}

// UpdateService handles PUT /api/provider/services/{id}
func (h *ListingHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	service, err := h.service.UpdateService(r.Context(), actor.ID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "Service updated", service)
}

// DeleteService handles DELETE /api/provider/services/{id}
func (h *ListingHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteService(r.Context(), actor.ID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete service")
		return
	}

	utils.ResponseSuccess(w, "Service deactivated", nil)
}

// AddMedia handles POST /api/provider/services/{id}/media
func (h *ListingHandler) AddMedia(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.MediaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	media, err := h.service.AddMedia(r.Context(), actor.ID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add media")
		return
	}

	utils.ResponseCreated(w, "Media added", media)
}

// RemoveMedia handles DELETE /api/provider/services/{id}/media/{mediaId}
func (h *ListingHandler) RemoveMedia(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	err := h.service.RemoveMedia(r.Context(), actor.ID, chi.URLParam(r, "id"), chi.URLParam(r, "mediaId"))
	if err != nil {
		handleServiceError(h.log, w, err, "remove media")
		return
	}

	utils.ResponseSuccess(w, "Media removed", nil)
}
