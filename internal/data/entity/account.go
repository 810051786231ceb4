package entity

import "github.com/google/uuid"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

type ProviderStatus string

const (
	ProviderStatusPending   ProviderStatus = "pending"
	ProviderStatusApproved  ProviderStatus = "approved"
	ProviderStatusSuspended ProviderStatus = "suspended"
)

type Customer struct {
	Base
	FullName      string  `db:"full_name"`
	Email         string  `db:"email"`
	PasswordHash  string  `db:"password_hash"`
	Phone         *string `db:"phone"`
	EmailVerified bool    `db:"email_verified"`
	IsActive      bool    `db:"is_active"`
}

// Provider is a service-offering business account.
type Provider struct {
	Base
	BusinessName  string         `db:"business_name"`
	OwnerName     string         `db:"owner_name"`
	Email         string         `db:"email"`
	PasswordHash  string         `db:"password_hash"`
	Phone         *string        `db:"phone"`
	Category      string         `db:"category"`
	City          string         `db:"city"`
	Description   *string        `db:"description"`
	Status        ProviderStatus `db:"status"`
	EmailVerified bool           `db:"email_verified"`
}

func (p *Provider) CanSignIn() bool {
	return p.Status != ProviderStatusSuspended
}

type Admin struct {
	Base
	FullName     string `db:"full_name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}

// Account is the role-independent view used by authentication flows.
type Account struct {
	ID            uuid.UUID
	Role          Role
	Email         string
	DisplayName   string
	PasswordHash  string
	EmailVerified bool
	Active        bool
}

func (c *Customer) Account() *Account {
	return &Account{
		ID:            c.ID,
		Role:          RoleCustomer,
		Email:         c.Email,
		DisplayName:   c.FullName,
		PasswordHash:  c.PasswordHash,
		EmailVerified: c.EmailVerified,
		Active:        c.IsActive,
	}
}

func (p *Provider) Account() *Account {
	return &Account{
		ID:            p.ID,
		Role:          RoleProvider,
		Email:         p.Email,
		DisplayName:   p.BusinessName,
		PasswordHash:  p.PasswordHash,
		EmailVerified: p.EmailVerified,
		Active:        p.CanSignIn(),
	}
}

// Admins are created already verified and cannot be deactivated.
func (a *Admin) Account() *Account {
	return &Account{
		ID:            a.ID,
		Role:          RoleAdmin,
		Email:         a.Email,
		DisplayName:   a.FullName,
		PasswordHash:  a.PasswordHash,
		EmailVerified: true,
		Active:        true,
	}
}
