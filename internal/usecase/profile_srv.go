package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/dto/response"
	"wedding-marketplace/pkg/apperror"
	"wedding-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileService interface {
	GetCustomerProfile(ctx context.Context, customerID uuid.UUID) (*response.CustomerResponse, error)
	UpdateCustomerProfile(ctx context.Context, customerID uuid.UUID, req *request.UpdateCustomerProfileRequest) (*response.CustomerResponse, error)
	GetProviderProfile(ctx context.Context, providerID uuid.UUID) (*response.ProviderResponse, error)
	UpdateProviderProfile(ctx context.Context, providerID uuid.UUID, req *request.UpdateProviderProfileRequest) (*response.ProviderResponse, error)
	ChangePassword(ctx context.Context, actor entity.Actor, req *request.ChangePasswordRequest) error
}

type profileService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewProfileService(deps Dependencies) ProfileService {
	return &profileService{
		repo: deps.Repo,
		log:  deps.Log.With(zap.String("service", "profile")),
		now:  deps.clock(),
	}
}

func (s *profileService) customer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to get profile", err)
	}
	if customer == nil {
		return nil, apperror.NotFound("customer not found")
	}
	return customer, nil
}

func (s *profileService) provider(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	provider, err := s.repo.Provider.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to get profile", err)
	}
	if provider == nil {
		return nil, apperror.NotFound("provider not found")
	}
	return provider, nil
}

func (s *profileService) GetCustomerProfile(ctx context.Context, customerID uuid.UUID) (*response.CustomerResponse, error) {
	customer, err := s.customer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *profileService) UpdateCustomerProfile(ctx context.Context, customerID uuid.UUID, req *request.UpdateCustomerProfileRequest) (*response.CustomerResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	customer, err := s.customer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	customer.FullName = strings.TrimSpace(req.FullName)
	customer.Phone = req.Phone
	customer.UpdatedAt = s.now()

	if err := s.repo.Customer.UpdateProfile(ctx, customer); err != nil {
		return nil, apperror.Internal("failed to update profile", err)
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *profileService) GetProviderProfile(ctx context.Context, providerID uuid.UUID) (*response.ProviderResponse, error) {
	provider, err := s.provider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	resp := response.ProviderToResponse(provider)
	return &resp, nil
}

func (s *profileService) UpdateProviderProfile(ctx context.Context, providerID uuid.UUID, req *request.UpdateProviderProfileRequest) (*response.ProviderResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	provider, err := s.provider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	provider.BusinessName = strings.TrimSpace(req.BusinessName)
	provider.OwnerName = strings.TrimSpace(req.OwnerName)
	provider.Phone = req.Phone
	provider.Category = strings.TrimSpace(req.Category)
	provider.City = strings.TrimSpace(req.City)
	provider.Description = req.Description
	provider.UpdatedAt = s.now()

	if err := s.repo.Provider.UpdateProfile(ctx, provider); err != nil {
		return nil, apperror.Internal("failed to update profile", err)
	}

	resp := response.ProviderToResponse(provider)
	return &resp, nil
}

func (s *profileService) ChangePassword(ctx context.Context, actor entity.Actor, req *request.ChangePasswordRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	var account *entity.Account
	var update func(context.Context, uuid.UUID, string) error

	switch actor.Role {
	case entity.RoleCustomer:
		c, err := s.customer(ctx, actor.ID)
		if err != nil {
			return err
		}
		account, update = c.Account(), s.repo.Customer.UpdatePassword
	case entity.RoleProvider:
		p, err := s.provider(ctx, actor.ID)
		if err != nil {
			return err
		}
		account, update = p.Account(), s.repo.Provider.UpdatePassword
	case entity.RoleAdmin:
		a, err := s.repo.Admin.FindByID(ctx, actor.ID)
		if err != nil {
			return apperror.Internal("failed to get account", err)
		}
		if a == nil {
			return apperror.NotFound("admin not found")
		}
		account, update = a.Account(), s.repo.Admin.UpdatePassword
	default:
		return apperror.Forbidden("unsupported role")
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, account.PasswordHash) {
		return apperror.Validation("current password is incorrect", map[string]string{
			"current_password": "Incorrect password",
		})
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperror.Internal("failed to process password", err)
	}

	if err := update(ctx, account.ID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("account not found")
		}
		return apperror.Internal("failed to change password", err)
	}

	s.log.Info("Password changed",
		zap.String("account_id", account.ID.String()),
		zap.String("role", string(actor.Role)))
	return nil
}
