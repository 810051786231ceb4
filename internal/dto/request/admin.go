package request

type ProviderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved suspended"`
}

type CustomerActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type ProviderListRequest struct {
	PaginatedRequest
	Status string
}

type CustomerListRequest struct {
	PaginatedRequest
	Search string
}
