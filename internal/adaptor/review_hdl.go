package adaptor

import (
	"net/http"

	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/usecase"
	"wedding-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews (customer)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.CreateReview(r.Context(), actor.ID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review submitted", review)
}

// ListServiceReviews handles GET /api/services/{id}/reviews (public)
func (h *ReviewHandler) ListServiceReviews(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	reviews, err := h.service.ListServiceReviews(r.Context(), chi.URLParam(r, "id"), &page)
	if err != nil {
		handleServiceError(h.log, w, err, "list service reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// ListCustomerReviews handles GET /api/customer/reviews
func (h *ReviewHandler) ListCustomerReviews(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	page := pageFromQuery(r)
	reviews, err := h.service.ListCustomerReviews(r.Context(), actor.ID, &page)
	if err != nil {
		handleServiceError(h.log, w, err, "list customer reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// DeleteReview handles DELETE /api/admin/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "Review deleted", nil)
}
