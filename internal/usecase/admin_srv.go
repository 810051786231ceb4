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

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

type AdminService interface {
	ListProviders(ctx context.Context, req *request.ProviderListRequest) (*response.PaginatedResponse[response.ProviderResponse], error)
	UpdateProviderStatus(ctx context.Context, providerID string, req *request.ProviderStatusRequest) (*response.ProviderResponse, error)
	ListCustomers(ctx context.Context, req *request.CustomerListRequest) (*response.PaginatedResponse[response.CustomerResponse], error)
	SetCustomerActive(ctx context.Context, customerID string, req *request.CustomerActiveRequest) (*response.CustomerResponse, error)
	GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	Stats(ctx context.Context) (*response.StatsResponse, error)

	// BootstrapAdmin creates the configured admin when no admin exists yet.
	BootstrapAdmin(ctx context.Context) error
}

type adminService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAdminService(deps Dependencies) AdminService {
	return &adminService{
		repo:   deps.Repo,
		config: deps.Config,
		log:    deps.Log.With(zap.String("service", "admin")),
		now:    deps.clock(),
	}
}

func (s *adminService) ListProviders(ctx context.Context, req *request.ProviderListRequest) (*response.PaginatedResponse[response.ProviderResponse], error) {
	var status *entity.ProviderStatus
	if req.Status != "" {
		st := entity.ProviderStatus(strings.ToLower(strings.TrimSpace(req.Status)))
		switch st {
		case entity.ProviderStatusPending, entity.ProviderStatusApproved, entity.ProviderStatusSuspended:
			status = &st
		default:
			return nil, apperror.Validation("invalid filter", map[string]string{
				"status": "Must be one of: pending, approved, suspended",
			})
		}
	}

	providers, err := s.repo.Provider.FindAll(ctx, status, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("failed to list providers", err)
	}
	total, err := s.repo.Provider.CountAll(ctx, status)
	if err != nil {
		return nil, apperror.Internal("failed to count providers", err)
	}

	data := make([]response.ProviderResponse, 0, len(providers))
	for _, p := range providers {
		data = append(data, response.ProviderToResponse(p))
	}
	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *adminService) UpdateProviderStatus(ctx context.Context, providerID string, req *request.ProviderStatusRequest) (*response.ProviderResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	id, err := parseID("provider_id", providerID)
	if err != nil {
		return nil, err
	}

	provider, err := s.repo.Provider.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to get provider", err)
	}
	if provider == nil {
		return nil, apperror.NotFound("provider %s not found", providerID)
	}

	status := entity.ProviderStatus(req.Status)
	if err := s.repo.Provider.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("provider %s not found", providerID)
		}
		return nil, apperror.Internal("failed to update provider status", err)
	}

	s.log.Info("Provider status changed",
		zap.String("provider_id", providerID),
		zap.String("from", string(provider.Status)),
		zap.String("to", string(status)))

	provider.Status = status
	provider.UpdatedAt = s.now()
	resp := response.ProviderToResponse(provider)
	return &resp, nil
}

func (s *adminService) ListCustomers(ctx context.Context, req *request.CustomerListRequest) (*response.PaginatedResponse[response.CustomerResponse], error) {
	search := strings.TrimSpace(req.Search)

	customers, err := s.repo.Customer.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("failed to list customers", err)
	}
	total, err := s.repo.Customer.CountAll(ctx, search)
	if err != nil {
		return nil, apperror.Internal("failed to count customers", err)
	}

	data := make([]response.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		data = append(data, response.CustomerToResponse(c))
	}
	return response.NewPaginatedResponse(data, req.CurrentPage(), req.Limit(), total), nil
}

func (s *adminService) SetCustomerActive(ctx context.Context, customerID string, req *request.CustomerActiveRequest) (*response.CustomerResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	id, err := parseID("customer_id", customerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Customer.SetActive(ctx, id, *req.IsActive); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("customer %s not found", customerID)
		}
		return nil, apperror.Internal("failed to update customer", err)
	}

	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to get customer", err)
	}
	if customer == nil {
		return nil, apperror.NotFound("customer %s not found", customerID)
	}

	s.log.Info("Customer activation changed",
		zap.String("customer_id", customerID),
		zap.Bool("active", *req.IsActive))

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *adminService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := parseID("booking_id", bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to get booking", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("booking %s not found", bookingID)
	}

	resp := response.BookingToResponse(booking, nil)
	return &resp, nil
}

// Stats runs the dashboard counts concurrently; any failure fails the whole call.
func (s *adminService) Stats(ctx context.Context) (*response.StatsResponse, error) {
	var (
		customers, providers, services, bookings, reviews int64
		providersByStatus                                 map[entity.ProviderStatus]int
		bookingsByStatus                                  map[entity.BookingStatus]int
	)

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) (err error) {
		customers, err = s.repo.Customer.CountAll(ctx, "")
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		providers, err = s.repo.Provider.CountAll(ctx, nil)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		providersByStatus, err = s.repo.Provider.CountByStatus(ctx)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		services, err = s.repo.Service.CountAll(ctx, entity.ServiceFilter{})
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		bookings, err = s.repo.Booking.CountAll(ctx, entity.BookingFilter{})
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		bookingsByStatus, err = s.repo.Booking.CountByStatus(ctx)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		reviews, err = s.repo.Review.CountAll(ctx)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, apperror.Internal("failed to load stats", err)
	}

	resp := response.StatsToResponse(&entity.PlatformStats{
		Customers:         int(customers),
		Providers:         int(providers),
		ProvidersByStatus: providersByStatus,
		Services:          int(services),
		Bookings:          int(bookings),
		BookingsByStatus:  bookingsByStatus,
		Reviews:           int(reviews),
	})
	return &resp, nil
}

func (s *adminService) BootstrapAdmin(ctx context.Context) error {
	email := normalizeEmail(s.config.Admin.Email)
	if email == "" || s.config.Admin.Password == "" {
		s.log.Debug("Admin bootstrap skipped, credentials not configured")
		return nil
	}

	count, err := s.repo.Admin.CountAll(ctx)
	if err != nil {
		return apperror.Internal("failed to count admins", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(s.config.Admin.Password)
	if err != nil {
		return apperror.Internal("failed to process password", err)
	}

	admin := &entity.Admin{
		Base:         entity.NewBase(s.now()),
		FullName:     "Administrator",
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Admin.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return apperror.Internal("failed to create admin", err)
	}

	s.log.Info("Admin account bootstrapped", zap.String("email", email))
	return nil
}
