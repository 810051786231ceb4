package repository

import (
	"context"
	"fmt"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MediaRepository interface {
	Create(ctx context.Context, media *entity.Media) error
	FindByServiceID(ctx context.Context, serviceID uuid.UUID) ([]*entity.Media, error)
	NextSortOrder(ctx context.Context, serviceID uuid.UUID) (int, error)
	Delete(ctx context.Context, id, serviceID uuid.UUID) error
}

type mediaRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMediaRepository(db database.PgxIface, log *zap.Logger) MediaRepository {
	return &mediaRepository{
		db:  db,
		log: log.With(zap.String("repository", "media")),
	}
}

func (r *mediaRepository) Create(ctx context.Context, media *entity.Media) error {
	query := `
		INSERT INTO media (id, service_id, url, media_type, caption, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		media.ID,
		media.ServiceID,
		media.URL,
		media.MediaType,
		media.Caption,
		media.SortOrder,
		media.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create media",
			zap.Error(err),
			zap.String("service_id", media.ServiceID.String()),
		)
		return fmt.Errorf("create media for service %s: %w", media.ServiceID, err)
	}

	return nil
}

func (r *mediaRepository) FindByServiceID(ctx context.Context, serviceID uuid.UUID) ([]*entity.Media, error) {
	query := `
		SELECT id, service_id, url, media_type, caption, sort_order, created_at
		FROM media
		WHERE service_id = $1
		ORDER BY sort_order, created_at
	`

	rows, err := r.db.Query(ctx, query, serviceID)
	if err != nil {
		r.log.Error("Failed to find media by service",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
		)
		return nil, fmt.Errorf("find media for service %s: %w", serviceID, err)
	}
	defer rows.Close()

	var items []*entity.Media
	for rows.Next() {
		var m entity.Media
		err := rows.Scan(
			&m.ID,
			&m.ServiceID,
			&m.URL,
			&m.MediaType,
			&m.Caption,
			&m.SortOrder,
			&m.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan media row", zap.Error(err))
			return nil, fmt.Errorf("scan media row: %w", err)
		}
		items = append(items, &m)
	}

	return items, rows.Err()
}

func (r *mediaRepository) NextSortOrder(ctx context.Context, serviceID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(MAX(sort_order) + 1, 0) FROM media WHERE service_id = $1`

	var next int
	if err := r.db.QueryRow(ctx, query, serviceID).Scan(&next); err != nil {
		return 0, fmt.Errorf("next media sort order for service %s: %w", serviceID, err)
	}
	return next, nil
}

func (r *mediaRepository) Delete(ctx context.Context, id, serviceID uuid.UUID) error {
	query := `DELETE FROM media WHERE id = $1 AND service_id = $2`

	result, err := r.db.Exec(ctx, query, id, serviceID)
	if err != nil {
		r.log.Error("Failed to delete media",
			zap.Error(err),
			zap.String("media_id", id.String()),
		)
		return fmt.Errorf("delete media %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("media %s: %w", id, ErrNotFound)
	}

	return nil
}
