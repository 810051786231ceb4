package repository

import (
	"context"
	"errors"
	"fmt"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	WithTx(tx pgx.Tx) ReviewRepository
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error)
	FindByServiceID(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]*entity.ReviewWithAuthor, error)
	CountByServiceID(ctx context.Context, serviceID uuid.UUID) (int64, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.ReviewWithAuthor, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) WithTx(tx pgx.Tx) ReviewRepository {
	return &reviewRepository{db: tx, log: r.log}
}

const reviewColumns = `r.id, r.booking_id, r.service_id, r.customer_id, r.rating, r.comment, r.created_at`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var rv entity.Review
	err := row.Scan(
		&rv.ID,
		&rv.BookingID,
		&rv.ServiceID,
		&rv.CustomerID,
		&rv.Rating,
		&rv.Comment,
		&rv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, booking_id, service_id, customer_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.BookingID,
		review.ServiceID,
		review.CustomerID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("booking_id", review.BookingID.String()),
		)
		return wrapWriteErr(err, "create review for booking %s", review.BookingID)
	}

	return nil
}

func (r *reviewRepository) findOne(ctx context.Context, where string, arg any) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews r WHERE ` + where

	review, err := scanReview(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review", zap.Error(err), zap.Any("key", arg))
		return nil, fmt.Errorf("find review: %w", err)
	}
	return review, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	return r.findOne(ctx, "r.id = $1", id)
}

func (r *reviewRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	return r.findOne(ctx, "r.booking_id = $1", bookingID)
}

func (r *reviewRepository) findWithAuthor(ctx context.Context, where string, id uuid.UUID, limit, offset int) ([]*entity.ReviewWithAuthor, error) {
	query := `
		SELECT ` + reviewColumns + `, c.full_name
		FROM reviews r
		JOIN customers c ON c.id = r.customer_id
		WHERE ` + where + `
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, id, limit, offset)
	if err != nil {
		r.log.Error("Failed to list reviews",
			zap.Error(err),
			zap.String("id", id.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list reviews for %s: %w", id, err)
	}
	defer rows.Close()

	var reviews []*entity.ReviewWithAuthor
	for rows.Next() {
		var rv entity.ReviewWithAuthor
		err := rows.Scan(
			&rv.ID,
			&rv.BookingID,
			&rv.ServiceID,
			&rv.CustomerID,
			&rv.Rating,
			&rv.Comment,
			&rv.CreatedAt,
			&rv.CustomerName,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &rv)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) FindByServiceID(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]*entity.ReviewWithAuthor, error) {
	return r.findWithAuthor(ctx, "r.service_id = $1", serviceID, limit, offset)
}

func (r *reviewRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.ReviewWithAuthor, error) {
	return r.findWithAuthor(ctx, "r.customer_id = $1", customerID, limit, offset)
}

func (r *reviewRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return count, nil
}

func (r *reviewRepository) CountByServiceID(ctx context.Context, serviceID uuid.UUID) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM reviews WHERE service_id = $1`, serviceID)
}

func (r *reviewRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM reviews WHERE customer_id = $1`, customerID)
}

func (r *reviewRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM reviews`)
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s: %w", id, ErrNotFound)
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}
