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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ListingService interface {
	// Provider endpoints
	CreateService(ctx context.Context, providerID uuid.UUID, req *request.ServiceRequest) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, providerID uuid.UUID, serviceID string, req *request.ServiceRequest) (*response.ServiceResponse, error)
	DeleteService(ctx context.Context, providerID uuid.UUID, serviceID string) error
	ListProviderServices(ctx context.Context, providerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ServiceResponse], error)
	AddMedia(ctx context.Context, providerID uuid.UUID, serviceID string, req *request.MediaRequest) (*response.MediaResponse, error)
	RemoveMedia(ctx context.Context, providerID uuid.UUID, serviceID, mediaID string) error

	// Public endpoints
	ListServices(ctx context.Context, req *request.ServiceListRequest) (*response.PaginatedResponse[response.ServiceResponse], error)
	GetService(ctx context.Context, serviceID string) (*response.ServiceDetailResponse, error)
}

type listingService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewListingService(deps Dependencies) ListingService {
	return &listingService{
		repo: deps.Repo,
		log:  deps.Log.With(zap.String("service", "listing")),
		now:  deps.clock(),
	}
}

// ownedService loads serviceID and checks it belongs to providerID.
func (s *listingService) ownedService(ctx context.Context, providerID uuid.UUID, serviceID string) (*entity.Service, error) {
	id, err := parseID("service_id", serviceID)
	if err != nil {
		return nil, err
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to get service", err)
	}
	if service == nil {
		return nil, apperror.NotFound("service not found")
	}
	if service.ProviderID != providerID {
		s.log.Warn("Provider tried to modify foreign service",
			zap.String("provider_id", providerID.String()),
			zap.String("service_id", serviceID))
		return nil, apperror.Unauthorized("service belongs to another provider")
	}
	return service, nil
}

func (s *listingService) CreateService(ctx context.Context, providerID uuid.UUID, req *request.ServiceRequest) (*response.ServiceResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	provider, err := s.repo.Provider.FindByID(ctx, providerID)
	if err != nil {
		return nil, apperror.Internal("failed to get provider", err)
	}
	if provider == nil {
		return nil, apperror.NotFound("provider not found")
	}
	if provider.Status == entity.ProviderStatusSuspended {
		return nil, apperror.Forbidden("suspended providers cannot list services")
	}

	service := &entity.Service{
		Base:        entity.NewBase(s.now()),
		ProviderID:  providerID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    strings.TrimSpace(req.Category),
		City:        strings.TrimSpace(req.City),
		BasePrice:   req.BasePrice,
		IsActive:    true,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		return nil, apperror.Internal("failed to create service", err)
	}

	s.log.Info("Service created",
		zap.String("service_id", service.ID.String()),
		zap.String("provider_id", providerID.String()))

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *listingService) UpdateService(ctx context.Context, providerID uuid.UUID, serviceID string, req *request.ServiceRequest) (*response.ServiceResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	service, err := s.ownedService(ctx, providerID, serviceID)
	if err != nil {
		return nil, err
	}

	service.Title = strings.TrimSpace(req.Title)
	service.Description = req.Description
	service.Category = strings.TrimSpace(req.Category)
	service.City = strings.TrimSpace(req.City)
	service.BasePrice = req.BasePrice
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	service.UpdatedAt = s.now()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("service not found")
		}
		return nil, apperror.Internal("failed to update service", err)
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

// DeleteService only deactivates; existing bookings keep their reference.
func (s *listingService) DeleteService(ctx context.Context, providerID uuid.UUID, serviceID string) error {
	service, err := s.ownedService(ctx, providerID, serviceID)
	if err != nil {
		return err
	}

	if err := s.repo.Service.Deactivate(ctx, service.ID, providerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("service not found")
		}
		return apperror.Internal("failed to delete service", err)
	}

	s.log.Info("Service deactivated", zap.String("service_id", service.ID.String()))
	return nil
}

func (s *listingService) ListProviderServices(ctx context.Context, providerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ServiceResponse], error) {
	filter := entity.ServiceFilter{ProviderID: &providerID}
	return s.list(ctx, filter, *req)
}

func (s *listingService) ListServices(ctx context.Context, req *request.ServiceListRequest) (*response.PaginatedResponse[response.ServiceResponse], error) {
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return nil, apperror.Validation("invalid price range", map[string]string{
			"min_price": "Must not exceed max_price",
		})
	}

	filter := entity.ServiceFilter{
		Category:     strings.TrimSpace(req.Category),
		City:         strings.TrimSpace(req.City),
		Search:       strings.TrimSpace(req.Search),
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		ActiveOnly:   true,
		ApprovedOnly: true,
	}
	return s.list(ctx, filter, req.PaginatedRequest)
}

func (s *listingService) list(ctx context.Context, filter entity.ServiceFilter, page request.PaginatedRequest) (*response.PaginatedResponse[response.ServiceResponse], error) {
	services, err := s.repo.Service.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, apperror.Internal("failed to list services", err)
	}

	total, err := s.repo.Service.CountAll(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("failed to count services", err)
	}

	data := make([]response.ServiceResponse, 0, len(services))
	for _, svc := range services {
		data = append(data, response.ServiceToResponse(svc))
	}

	return response.NewPaginatedResponse(data, page.CurrentPage(), page.Limit(), total), nil
}

// GetService hides inactive services and those of providers that are not approved.
func (s *listingService) GetService(ctx context.Context, serviceID string) (*response.ServiceDetailResponse, error) {
	id, err := parseID("service_id", serviceID)
	if err != nil {
		return nil, err
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to get service", err)
	}
	if service == nil || !service.IsActive {
		return nil, apperror.NotFound("service not found")
	}

	provider, err := s.repo.Provider.FindByID(ctx, service.ProviderID)
	if err != nil {
		return nil, apperror.Internal("failed to get provider", err)
	}
	if provider == nil || provider.Status != entity.ProviderStatusApproved {
		return nil, apperror.NotFound("service not found")
	}

	media, err := s.repo.Media.FindByServiceID(ctx, service.ID)
	if err != nil {
		return nil, apperror.Internal("failed to get media", err)
	}

	resp := response.ServiceToDetailResponse(service, media, provider)
	return &resp, nil
}

func (s *listingService) AddMedia(ctx context.Context, providerID uuid.UUID, serviceID string, req *request.MediaRequest) (*response.MediaResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	service, err := s.ownedService(ctx, providerID, serviceID)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Media.NextSortOrder(ctx, service.ID)
	if err != nil {
		return nil, apperror.Internal("failed to add media", err)
	}

	media := &entity.Media{
		BaseSimple: entity.NewBaseSimple(s.now()),
		ServiceID:  service.ID,
		URL:        strings.TrimSpace(req.URL),
		MediaType:  entity.MediaType(req.MediaType),
		Caption:    req.Caption,
		SortOrder:  order,
	}
	if err := s.repo.Media.Create(ctx, media); err != nil {
		return nil, apperror.Internal("failed to add media", err)
	}

	resp := response.MediaToResponse(media)
	return &resp, nil
}

func (s *listingService) RemoveMedia(ctx context.Context, providerID uuid.UUID, serviceID, mediaID string) error {
	service, err := s.ownedService(ctx, providerID, serviceID)
	if err != nil {
		return err
	}

	id, err := parseID("media_id", mediaID)
	if err != nil {
		return err
	}

	if err := s.repo.Media.Delete(ctx, id, service.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("media not found")
		}
		return apperror.Internal("failed to remove media", err)
	}
	return nil
}
