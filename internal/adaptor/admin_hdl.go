package adaptor

import (
	"net/http"

	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/usecase"
	"wedding-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// ListProviders handles GET /api/admin/providers?status=
func (h *AdminHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	req := &request.ProviderListRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           r.URL.Query().Get("status"),
	}

	providers, err := h.service.ListProviders(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list providers")
		return
	}

	utils.ResponseSuccess(w, "success", providers)
}

// UpdateProviderStatus handles PUT /api/admin/providers/{id}/status
func (h *AdminHandler) UpdateProviderStatus(w http.ResponseWriter, r *http.Request) {
	var req request.ProviderStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	provider, err := h.service.UpdateProviderStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update provider status")
		return
	}

	utils.ResponseSuccess(w, "Provider status updated", provider)
}

// ListCustomers handles GET /api/admin/customers?search=
func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	req := &request.CustomerListRequest{
		PaginatedRequest: pageFromQuery(r),
		Search:           r.URL.Query().Get("search"),
	}

	customers, err := h.service.ListCustomers(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list customers")
		return
	}

	utils.ResponseSuccess(w, "success", customers)
}

// SetCustomerActive handles PUT /api/admin/customers/{id}/active
func (h *AdminHandler) SetCustomerActive(w http.ResponseWriter, r *http.Request) {
	var req request.CustomerActiveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customer, err := h.service.SetCustomerActive(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "set customer active")
		return
	}

	utils.ResponseSuccess(w, "Customer updated", customer)
}

// GetBooking handles GET /api/admin/bookings/{id}
func (h *AdminHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}
