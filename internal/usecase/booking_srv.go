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
	"wedding-marketplace/pkg/metrics"
	"wedding-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"

	// bookingRefAttempts bounds retries when a generated reference collides.
	bookingRefAttempts = 3
)

type BookingService interface {
	// Customer endpoints
	CreateBooking(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ListCustomerBookings(ctx context.Context, customerID uuid.UUID, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Provider endpoints
	ListProviderBookings(ctx context.Context, providerID uuid.UUID, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Either party
	GetBooking(ctx context.Context, actor entity.Actor, bookingID string) (*response.BookingResponse, error)
	PerformAction(ctx context.Context, actor entity.Actor, bookingID string, req *request.BookingActionRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(deps Dependencies) BookingService {
	return &bookingService{
		repo:     deps.Repo,
		notifier: deps.notifier(),
		log:      deps.Log.With(zap.String("service", "booking")),
		now:      deps.clock(),
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *bookingService) CreateBooking(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	serviceID, err := parseID("service_id", req.ServiceID)
	if err != nil {
		return nil, err
	}

	eventDate, err := time.Parse(dateLayout, req.EventStartDate)
	if err != nil {
		return nil, apperror.Validation("invalid event date", map[string]string{
			"event_start_date": "Must match format " + dateLayout,
		})
	}

	now := s.now()
	if eventDate.Before(startOfDay(now)) {
		return nil, apperror.Validation("event date is in the past", map[string]string{
			"event_start_date": "Must not be in the past",
		})
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, apperror.Internal("failed to get service", err)
	}
	if service == nil || !service.IsActive {
		return nil, apperror.NotFound("service %s not found", serviceID)
	}

	provider, err := s.repo.Provider.FindByID(ctx, service.ProviderID)
	if err != nil {
		return nil, apperror.Internal("failed to get provider", err)
	}
	if provider == nil || provider.Status != entity.ProviderStatusApproved {
		return nil, apperror.NotFound("service %s not found", serviceID)
	}

	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, apperror.Internal("failed to get customer", err)
	}
	if customer == nil {
		return nil, apperror.NotFound("customer not found")
	}
	if !customer.IsActive {
		return nil, apperror.Forbidden("account is deactivated")
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		name = customer.FullName
	}
	email := normalizeEmail(req.CustomerEmail)
	if email == "" {
		email = customer.Email
	}

	booking := &entity.Booking{
		Base:           entity.NewBase(now),
		ServiceID:      service.ID,
		ProviderID:     service.ProviderID,
		CustomerID:     customerID,
		Status:         entity.BookingStatusPending,
		EventStartDate: eventDate,
		EventTime:      req.EventTime,
		TotalAmount:    req.Amount,
		CustomerName:   name,
		CustomerEmail:  email,
		CustomerPhone:  strings.TrimSpace(req.CustomerPhone),
		GuestCount:     req.GuestCount,
		Venue:          req.Venue,
		Notes:          req.Notes,
		PaymentStatus:  entity.PaymentStatusUnpaid,
		ServiceTitle:   service.Title,
	}

	for attempt := 1; ; attempt++ {
		booking.BookingRef = utils.GenerateBookingRef(now)
		err = s.repo.Booking.Create(ctx, booking)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrDuplicate) && attempt < bookingRefAttempts {
			s.log.Warn("Booking reference collision, retrying", zap.String("booking_ref", booking.BookingRef))
			continue
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("service_id", serviceID.String()))
		return nil, apperror.Internal("failed to create booking", err)
	}

	metrics.RecordBookingCreated()
	s.notifier.BookingCreated(ctx, booking)

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("provider_id", booking.ProviderID.String()))

	viewer := entity.Actor{ID: customerID, Role: entity.RoleCustomer}
	resp := response.BookingToResponse(booking, &viewer)
	return &resp, nil
}

// bookingFilter translates list query parameters into a repository filter.
func bookingFilter(req *request.BookingListRequest) (entity.BookingFilter, error) {
	var filter entity.BookingFilter
	fields := map[string]string{}

	if req.Status != "" {
		status, ok := entity.ParseBookingStatus(req.Status)
		if ok {
			filter.Status = &status
		} else {
			fields["status"] = "Must be one of: pending, accepted, rejected, cancelled, completed"
		}
	}

	parseDate := func(field, value string) *time.Time {
		if value == "" {
			return nil
		}
		t, err := time.Parse(dateLayout, value)
		if err != nil {
			fields[field] = "Must match format " + dateLayout
			return nil
		}
		return &t
	}
	filter.From = parseDate("from", req.From)
	filter.To = parseDate("to", req.To)

	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		fields["from"] = "Must not be after to"
	}
	if len(fields) > 0 {
		return filter, apperror.Validation("invalid filter", fields)
	}

	filter.Search = strings.TrimSpace(req.Search)
	return filter, nil
}

func (s *bookingService) ListCustomerBookings(ctx context.Context, customerID uuid.UUID, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	filter, err := bookingFilter(req)
	if err != nil {
		return nil, err
	}
	filter.CustomerID = &customerID
	return s.list(ctx, filter, req.PaginatedRequest, entity.Actor{ID: customerID, Role: entity.RoleCustomer})
}

func (s *bookingService) ListProviderBookings(ctx context.Context, providerID uuid.UUID, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	filter, err := bookingFilter(req)
	if err != nil {
		return nil, err
	}
	filter.ProviderID = &providerID
	return s.list(ctx, filter, req.PaginatedRequest, entity.Actor{ID: providerID, Role: entity.RoleProvider})
}

func (s *bookingService) list(ctx context.Context, filter entity.BookingFilter, page request.PaginatedRequest, viewer entity.Actor) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, apperror.Internal("failed to list bookings", err)
	}

	total, err := s.repo.Booking.CountAll(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("failed to count bookings", err)
	}

	data := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		data = append(data, response.BookingToResponse(b, &viewer))
	}

	return response.NewPaginatedResponse(data, page.CurrentPage(), page.Limit(), total), nil
}

func (s *bookingService) find(ctx context.Context, bookingID string) (*entity.Booking, error) {
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
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor entity.Actor, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	isProvider := actor.Role == entity.RoleProvider && actor.ID == booking.ProviderID
	isCustomer := actor.Role == entity.RoleCustomer && actor.ID == booking.CustomerID
	if !isProvider && !isCustomer {
		return nil, apperror.Unauthorized("not a party to booking %s", bookingID)
	}

	resp := response.BookingToResponse(booking, &actor)
	return &resp, nil
}

// PerformAction runs one lifecycle transition. The write is guarded on the
// status that was read, so of two racing callers only one can succeed.
func (s *bookingService) PerformAction(ctx context.Context, actor entity.Actor, bookingID string, req *request.BookingActionRequest) (*response.BookingResponse, error) {
	if err := validateRequest(req); err != nil {
		metrics.RecordBookingTransition(req.Action, string(apperror.KindValidation))
		return nil, err
	}

	action := entity.BookingAction(strings.ToLower(strings.TrimSpace(req.Action)))

	resp, err := s.performAction(ctx, actor, bookingID, action, req.Reason)
	if err != nil {
		metrics.RecordBookingTransition(string(action), string(apperror.From(err).Kind))
		return nil, err
	}
	metrics.RecordBookingTransition(string(action), "ok")
	return resp, nil
}

// ensureActorActive re-reads the caller's account, since a token issued
// before suspension or deactivation stays valid until it expires.
func (s *bookingService) ensureActorActive(ctx context.Context, actor entity.Actor) error {
	switch actor.Role {
	case entity.RoleProvider:
		provider, err := s.repo.Provider.FindByID(ctx, actor.ID)
		if err != nil {
			return apperror.Internal("failed to get provider", err)
		}
		if provider == nil || !provider.CanSignIn() {
			return apperror.Forbidden("provider account is suspended")
		}
	case entity.RoleCustomer:
		customer, err := s.repo.Customer.FindByID(ctx, actor.ID)
		if err != nil {
			return apperror.Internal("failed to get customer", err)
		}
		if customer == nil || !customer.IsActive {
			return apperror.Forbidden("customer account is deactivated")
		}
	}
	return nil
}

func (s *bookingService) performAction(ctx context.Context, actor entity.Actor, bookingID string, action entity.BookingAction, reason string) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureActorActive(ctx, actor); err != nil {
		return nil, err
	}

	change, err := booking.Transition(action, actor, reason, s.now())
	if err != nil {
		s.log.Warn("Booking transition refused",
			zap.String("booking_id", bookingID),
			zap.String("action", string(action)),
			zap.String("status", string(booking.Status)),
			zap.String("role", string(actor.Role)),
			zap.Error(err))
		return nil, err
	}

	if err := s.repo.Booking.ApplyStatusChange(ctx, change); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			s.log.Warn("Booking changed concurrently",
				zap.String("booking_id", bookingID),
				zap.String("action", string(action)))
			return nil, apperror.InvalidTransition("booking %s is no longer %s", bookingID, change.From)
		}
		return nil, apperror.Internal("failed to update booking", err)
	}

	booking.Apply(change)
	s.notifier.BookingStatusChanged(ctx, booking, change)

	s.log.Info("Booking status changed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(change.From)),
		zap.String("to", string(change.To)),
		zap.String("role", string(actor.Role)))

	resp := response.BookingToResponse(booking, &actor)
	return &resp, nil
}
