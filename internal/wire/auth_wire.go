package wire

import (
	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, rt *routes) {
	h := rt.handler.Auth

	r.Route("/api/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		public := r.With(rt.limit)
		public.Post("/register/customer", h.RegisterCustomer)
		public.Post("/register/provider", h.RegisterProvider)
		public.Post("/login", h.Login)
		public.Post("/verify-email", h.VerifyEmail)
		public.Post("/resend-verification", h.ResendVerification)
		public.Post("/forgot-password", h.ForgotPassword)
		public.Get("/reset-password/validate", h.ValidateResetToken)
		public.Post("/reset-password", h.ResetPassword)

		// ==================== PROTECTED ROUTES ====================
		r.With(rt.authenticate, rt.limit).Post("/logout", h.Logout)
	})
}
