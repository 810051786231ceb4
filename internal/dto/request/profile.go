package request

type UpdateCustomerProfileRequest struct {
	FullName string  `json:"full_name" validate:"required,notblank,max=120"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
}

type UpdateProviderProfileRequest struct {
	BusinessName string  `json:"business_name" validate:"required,notblank,max=150"`
	OwnerName    string  `json:"owner_name" validate:"required,notblank,max=120"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
	Category     string  `json:"category" validate:"required,notblank,max=50"`
	City         string  `json:"city" validate:"required,notblank,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}
