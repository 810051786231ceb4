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

type ServiceRepository interface {
	WithTx(tx pgx.Tx) ServiceRepository
	Create(ctx context.Context, service *entity.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	FindAll(ctx context.Context, filter entity.ServiceFilter, limit, offset int) ([]*entity.Service, error)
	CountAll(ctx context.Context, filter entity.ServiceFilter) (int64, error)
	Update(ctx context.Context, service *entity.Service) error
	Deactivate(ctx context.Context, id, providerID uuid.UUID) error
	RecalculateRating(ctx context.Context, id uuid.UUID) error
}

type serviceRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

func (r *serviceRepository) WithTx(tx pgx.Tx) ServiceRepository {
	return &serviceRepository{db: tx, log: r.log}
}

const serviceColumns = `s.id, s.provider_id, s.title, s.description, s.category, s.city, s.base_price,
	s.is_active, s.rating_avg, s.review_count, s.created_at, s.updated_at`

func scanService(row pgx.Row) (*entity.Service, error) {
	var s entity.Service
	err := row.Scan(
		&s.ID,
		&s.ProviderID,
		&s.Title,
		&s.Description,
		&s.Category,
		&s.City,
		&s.BasePrice,
		&s.IsActive,
		&s.RatingAvg,
		&s.ReviewCount,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	query := `
		INSERT INTO services (id, provider_id, title, description, category, city, base_price,
		                      is_active, rating_avg, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		service.ID,
		service.ProviderID,
		service.Title,
		service.Description,
		service.Category,
		service.City,
		service.BasePrice,
		service.IsActive,
		service.RatingAvg,
		service.ReviewCount,
		service.CreatedAt,
		service.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("provider_id", service.ProviderID.String()),
			zap.String("title", service.Title),
		)
		return wrapWriteErr(err, "create service %q", service.Title)
	}

	return nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services s WHERE s.id = $1`

	service, err := scanService(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id, err)
	}

	return service, nil
}

func serviceFilter(filter entity.ServiceFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.ProviderID != nil {
		w.add("s.provider_id = ?", *filter.ProviderID)
	}
	if filter.Category != "" {
		w.add("LOWER(s.category) = LOWER(?)", filter.Category)
	}
	if filter.City != "" {
		w.add("LOWER(s.city) = LOWER(?)", filter.City)
	}
	if filter.Search != "" {
		w.add("(s.title ILIKE ? OR s.description ILIKE ?)", likePattern(filter.Search))
	}
	if filter.MinPrice != nil {
		w.add("s.base_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		w.add("s.base_price <= ?", *filter.MaxPrice)
	}
	if filter.ActiveOnly {
		w.raw("s.is_active = TRUE")
	}
	if filter.ApprovedOnly {
		w.add("p.status = ?", entity.ProviderStatusApproved)
	}
	return w
}

const serviceFrom = ` FROM services s JOIN service_providers p ON p.id = s.provider_id`

func (r *serviceRepository) FindAll(ctx context.Context, filter entity.ServiceFilter, limit, offset int) ([]*entity.Service, error) {
	w := serviceFilter(filter)
	query := `SELECT ` + serviceColumns + serviceFrom + w.sql() +
		` ORDER BY s.rating_avg DESC, s.created_at DESC` + w.page(limit, offset)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to find services",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service rows: %w", err)
	}

	r.log.Debug("Services found", zap.Int("count", len(services)))
	return services, nil
}

func (r *serviceRepository) CountAll(ctx context.Context, filter entity.ServiceFilter) (int64, error) {
	w := serviceFilter(filter)
	query := `SELECT COUNT(*)` + serviceFrom + w.sql()

	var count int64
	if err := r.db.QueryRow(ctx, query, w.args...).Scan(&count); err != nil {
		r.log.Error("Failed to count services", zap.Error(err))
		return 0, fmt.Errorf("count services: %w", err)
	}

	return count, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	query := `
		UPDATE services
		SET title = $3, description = $4, category = $5, city = $6,
		    base_price = $7, is_active = $8, updated_at = $9
		WHERE id = $1 AND provider_id = $2
	`

	result, err := r.db.Exec(ctx, query,
		service.ID,
		service.ProviderID,
		service.Title,
		service.Description,
		service.Category,
		service.City,
		service.BasePrice,
		service.IsActive,
		service.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update service",
			zap.Error(err),
			zap.String("service_id", service.ID.String()),
		)
		return fmt.Errorf("update service %s: %w", service.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s: %w", service.ID, ErrNotFound)
	}

	return nil
}

// Deactivate hides a service from listings; existing bookings keep referencing it.
func (r *serviceRepository) Deactivate(ctx context.Context, id, providerID uuid.UUID) error {
	query := `UPDATE services SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND provider_id = $2`

	result, err := r.db.Exec(ctx, query, id, providerID)
	if err != nil {
		r.log.Error("Failed to deactivate service",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return fmt.Errorf("deactivate service %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s: %w", id, ErrNotFound)
	}

	r.log.Info("Service deactivated", zap.String("service_id", id.String()))
	return nil
}

func (r *serviceRepository) RecalculateRating(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE services
		SET rating_avg = COALESCE((SELECT ROUND(AVG(rating)::numeric, 2) FROM reviews WHERE service_id = $1), 0),
		    review_count = (SELECT COUNT(*) FROM reviews WHERE service_id = $1),
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to recalculate service rating",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return fmt.Errorf("recalculate rating for service %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s: %w", id, ErrNotFound)
	}

	return nil
}
