package response

import (
	"time"

	"wedding-marketplace/internal/data/entity"
)

type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   AccountResponse `json:"account"`
}

type AccountResponse struct {
	ID            string      `json:"id"`
	Role          entity.Role `json:"role"`
	Email         string      `json:"email"`
	Name          string      `json:"name"`
	EmailVerified bool        `json:"email_verified"`
}

type CustomerResponse struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         *string   `json:"phone,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type ProviderResponse struct {
	ID            string                `json:"id"`
	BusinessName  string                `json:"business_name"`
	OwnerName     string                `json:"owner_name"`
	Email         string                `json:"email"`
	Phone         *string               `json:"phone,omitempty"`
	Category      string                `json:"category"`
	City          string                `json:"city"`
	Description   *string               `json:"description,omitempty"`
	Status        entity.ProviderStatus `json:"status"`
	EmailVerified bool                  `json:"email_verified"`
	CreatedAt     time.Time             `json:"created_at"`
}

type TokenStatusResponse struct {
	Valid bool `json:"valid"`
}

func AccountToResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:            account.ID.String(),
		Role:          account.Role,
		Email:         account.Email,
		Name:          account.DisplayName,
		EmailVerified: account.EmailVerified,
	}
}

func CustomerToResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID.String(),
		FullName:      c.FullName,
		Email:         c.Email,
		Phone:         c.Phone,
		EmailVerified: c.EmailVerified,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
	}
}

func ProviderToResponse(p *entity.Provider) ProviderResponse {
	return ProviderResponse{
		ID:            p.ID.String(),
		BusinessName:  p.BusinessName,
		OwnerName:     p.OwnerName,
		Email:         p.Email,
		Phone:         p.Phone,
		Category:      p.Category,
		City:          p.City,
		Description:   p.Description,
		Status:        p.Status,
		EmailVerified: p.EmailVerified,
		CreatedAt:     p.CreatedAt,
	}
}
