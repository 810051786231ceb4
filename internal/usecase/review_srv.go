package usecase

import (
	"context"
	"errors"
	"time"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/dto/response"
	"wedding-marketplace/pkg/apperror"
	"wedding-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewService interface {
	// Customer endpoints
	CreateReview(ctx context.Context, customerID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	ListCustomerReviews(ctx context.Context, customerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)

	// Public
	ListServiceReviews(ctx context.Context, serviceID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)

	// Admin
	DeleteReview(ctx context.Context, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	tx   database.Transactor
	log  *zap.Logger
	now  func() time.Time
}

func NewReviewService(deps Dependencies) ReviewService {
	return &reviewService{
		repo: deps.Repo,
		tx:   deps.Tx,
		log:  deps.Log.With(zap.String("service", "review")),
		now:  deps.clock(),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, customerID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	bookingID, err := parseID("booking_id", req.BookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, apperror.Internal("failed to get booking", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("booking %s not found", bookingID)
	}
	if booking.CustomerID != customerID {
		return nil, apperror.Unauthorized("only the booking's customer can review it")
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, apperror.Conflict("only completed bookings can be reviewed")
	}

	existing, err := s.repo.Review.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, apperror.Internal("failed to check review", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("booking already reviewed")
	}

	review := &entity.Review{
		BaseSimple: entity.NewBaseSimple(s.now()),
		BookingID:  booking.ID,
		ServiceID:  booking.ServiceID,
		CustomerID: customerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.Review.WithTx(tx).Create(ctx, review); err != nil {
			return err
		}
		return s.repo.Service.WithTx(tx).RecalculateRating(ctx, review.ServiceID)
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperror.Conflict("booking already reviewed")
	}
	if err != nil {
		return nil, apperror.Internal("failed to create review", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("service_id", review.ServiceID.String()),
		zap.Int("rating", review.Rating))

	resp := response.ReviewToResponse(review, booking.CustomerName)
	return &resp, nil
}

func reviewPage(reviews []*entity.ReviewWithAuthor, page request.PaginatedRequest, total int64) *response.PaginatedResponse[response.ReviewResponse] {
	data := make([]response.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		data = append(data, response.ReviewToResponse(&r.Review, r.CustomerName))
	}
	return response.NewPaginatedResponse(data, page.CurrentPage(), page.Limit(), total)
}

func (s *reviewService) ListServiceReviews(ctx context.Context, serviceID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	id, err := parseID("service_id", serviceID)
	if err != nil {
		return nil, err
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to get service", err)
	}
	if service == nil {
		return nil, apperror.NotFound("service %s not found", serviceID)
	}

	reviews, err := s.repo.Review.FindByServiceID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("failed to list reviews", err)
	}
	total, err := s.repo.Review.CountByServiceID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to count reviews", err)
	}

	return reviewPage(reviews, *req, total), nil
}

func (s *reviewService) ListCustomerReviews(ctx context.Context, customerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	reviews, err := s.repo.Review.FindByCustomerID(ctx, customerID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("failed to list reviews", err)
	}
	total, err := s.repo.Review.CountByCustomerID(ctx, customerID)
	if err != nil {
		return nil, apperror.Internal("failed to count reviews", err)
	}

	return reviewPage(reviews, *req, total), nil
}

// DeleteReview removes a review and refreshes the service's rating aggregate.
func (s *reviewService) DeleteReview(ctx context.Context, reviewID string) error {
	id, err := parseID("review_id", reviewID)
	if err != nil {
		return err
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return apperror.Internal("failed to get review", err)
	}
	if review == nil {
		return apperror.NotFound("review %s not found", reviewID)
	}

	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.Review.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		return s.repo.Service.WithTx(tx).RecalculateRating(ctx, review.ServiceID)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("review %s not found", reviewID)
	}
	if err != nil {
		return apperror.Internal("failed to delete review", err)
	}

	s.log.Info("Review deleted", zap.String("review_id", reviewID))
	return nil
}
