package adaptor

import (
	"net/http"

	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/usecase"
	"wedding-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

func bookingListFromQuery(r *http.Request) *request.BookingListRequest {
	query := r.URL.Query()
	return &request.BookingListRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           query.Get("status"),
		From:             query.Get("from"),
		To:               query.Get("to"),
		Search:           query.Get("search"),
	}
}

// CreateBooking handles POST /api/bookings (customer)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), actor.ID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// ListCustomerBookings handles GET /api/customer/bookings
func (h *BookingHandler) ListCustomerBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	bookings, err := h.service.ListCustomerBookings(r.Context(), actor.ID, bookingListFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list customer bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ListProviderBookings handles GET /api/provider/bookings
func (h *BookingHandler) ListProviderBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	bookings, err := h.service.ListProviderBookings(r.Context(), actor.ID, bookingListFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list provider bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBooking handles GET /api/bookings/{id} for either party.
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// PerformAction handles POST /api/bookings/{id}/action
func (h *BookingHandler) PerformAction(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.BookingActionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.PerformAction(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, req.Action+" booking")
		return
	}

	utils.ResponseSuccess(w, "Booking "+string(booking.Status), booking)
}
