package adaptor

import (
	"net/http"

	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/usecase"
	"wedding-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type ProfileHandler struct {
	service usecase.ProfileService
	log     *zap.Logger
}

func NewProfileHandler(service usecase.ProfileService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		log:     log.With(zap.String("handler", "profile")),
	}
}

// GetCustomerProfile handles GET /api/customer/profile
func (h *ProfileHandler) GetCustomerProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetCustomerProfile(r.Context(), actor.ID)
	if err != nil {
		handleServiceError(h.log, w, err, "get customer profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

// UpdateCustomerProfile handles PUT /api/customer/profile
func (h *ProfileHandler) UpdateCustomerProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.UpdateCustomerProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.service.UpdateCustomerProfile(r.Context(), actor.ID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update customer profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", profile)
}

// GetProviderProfile handles GET /api/provider/profile
func (h *ProfileHandler) GetProviderProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProviderProfile(r.Context(), actor.ID)
	if err != nil {
		handleServiceError(h.log, w, err, "get provider profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

// UpdateProviderProfile handles PUT /api/provider/profile
func (h *ProfileHandler) UpdateProviderProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.UpdateProviderProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.service.UpdateProviderProfile(r.Context(), actor.ID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update provider profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", profile)
}

// ChangePassword handles PUT /api/{role}/password for every role.
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), actor, &req); err != nil {
		handleServiceError(h.log, w, err, "change password")
		return
	}

	utils.ResponseSuccess(w, "Password changed", nil)
}
