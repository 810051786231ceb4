package request

type RegisterCustomerRequest struct {
	FullName string  `json:"full_name" validate:"required,notblank,max=120"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
}

type RegisterProviderRequest struct {
	BusinessName string  `json:"business_name" validate:"required,notblank,max=150"`
	OwnerName    string  `json:"owner_name" validate:"required,notblank,max=120"`
	Email        string  `json:"email" validate:"required,email,max=255"`
	Password     string  `json:"password" validate:"required,min=8,max=72"`
	Phone        string  `json:"phone" validate:"required,min=8,max=20"`
	Category     string  `json:"category" validate:"required,notblank,max=50"`
	City         string  `json:"city" validate:"required,notblank,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=customer provider admin"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required,notblank"`
}

// AccountEmailRequest identifies an account for resend-verification and forgot-password.
type AccountEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=customer provider"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required,notblank"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72,nefield=CurrentPassword"`
}
