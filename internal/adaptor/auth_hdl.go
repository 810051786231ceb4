package adaptor

import (
	"net/http"

	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/usecase"
	"wedding-marketplace/pkg/apperror"
	"wedding-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// RegisterCustomer handles POST /api/auth/register/customer
func (h *AuthHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterCustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customer, err := h.service.RegisterCustomer(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "register customer")
		return
	}

	utils.ResponseCreated(w, "Registration successful. Check your email to verify your account.", customer)
}

// RegisterProvider handles POST /api/auth/register/provider
func (h *AuthHandler) RegisterProvider(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterProviderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	provider, err := h.service.RegisterProvider(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "register provider")
		return
	}

	utils.ResponseCreated(w, "Registration successful. Your account is awaiting approval.", provider)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	auth, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", auth)
}

// Logout handles POST /api/auth/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := utils.GetTokenIDFromContext(r.Context())
	if !ok || tokenID == "" {
		utils.ResponseError(w, http.StatusUnauthorized, string(apperror.KindUnauthenticated), "Authentication required", nil)
		return
	}

	if err := h.service.Logout(r.Context(), tokenID); err != nil {
		handleServiceError(h.log, w, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// VerifyEmail handles POST /api/auth/verify-email
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.VerifyEmail(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "verify email")
		return
	}

	utils.ResponseSuccess(w, "Email verified successfully", nil)
}

// ResendVerification handles POST /api/auth/resend-verification
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req request.AccountEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ResendVerification(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "resend verification")
		return
	}

	utils.ResponseSuccess(w, "If the account exists and is unverified, a verification email has been sent", nil)
}

// ForgotPassword handles POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req request.AccountEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ForgotPassword(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "forgot password")
		return
	}

	utils.ResponseSuccess(w, "If the account exists, a password reset email has been sent", nil)
}

// ValidateResetToken handles GET /api/auth/reset-password/validate?token=
func (h *AuthHandler) ValidateResetToken(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.ValidateResetToken(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		handleServiceError(h.log, w, err, "validate reset token")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "reset password")
		return
	}

	utils.ResponseSuccess(w, "Password has been reset", nil)
}
