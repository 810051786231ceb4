package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/usecase"
	"wedding-marketplace/pkg/apperror"
	"wedding-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Profile *ProfileHandler
	Listing *ListingHandler
	Booking *BookingHandler
	Review  *ReviewHandler
	Admin   *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Profile: NewProfileHandler(service.Profile, log),
		Listing: NewListingHandler(service.Listing, log),
		Booking: NewBookingHandler(service.Booking, log),
		Review:  NewReviewHandler(service.Review, log),
		Admin:   NewAdminHandler(service.Admin, log),
	}
}

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			utils.ResponseError(w, http.StatusBadRequest, string(apperror.KindValidation), "Request body is required", nil)
			return false
		}
		utils.ResponseError(w, http.StatusBadRequest, string(apperror.KindValidation), "Invalid request body", nil)
		return false
	}
	return true
}

// actorFromRequest returns the authenticated caller placed in the context by middleware.Authenticate.
func actorFromRequest(w http.ResponseWriter, r *http.Request) (entity.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseError(w, http.StatusUnauthorized, string(apperror.KindUnauthenticated), "Authentication required", nil)
		return entity.Actor{}, false
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return entity.Actor{ID: userID, Role: entity.Role(role)}, true
}

// pageFromQuery accepts per_page or its alias limit.
func pageFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	perPage := query.Get("per_page")
	if perPage == "" {
		perPage = query.Get("limit")
	}
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(perPage, 10),
	}
}

// handleServiceError maps an apperror to its status and envelope. Internal causes are logged, never returned.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	appErr := apperror.From(err)
	status := appErr.HTTPStatus()

	if status >= http.StatusInternalServerError {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseError(w, status, string(appErr.Kind), "Internal server error", nil)
		return
	}

	log.Warn(operation+" failed",
		zap.String("kind", string(appErr.Kind)),
		zap.String("reason", appErr.Message),
	)

	var fields any
	if len(appErr.Fields) > 0 {
		fields = appErr.Fields
	}
	utils.ResponseError(w, status, string(appErr.Kind), appErr.Message, fields)
}
