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

type ProviderRepository interface {
	WithTx(tx pgx.Tx) ProviderRepository
	Create(ctx context.Context, provider *entity.Provider) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error)
	FindByEmail(ctx context.Context, email string) (*entity.Provider, error)
	FindAll(ctx context.Context, status *entity.ProviderStatus, limit, offset int) ([]*entity.Provider, error)
	CountAll(ctx context.Context, status *entity.ProviderStatus) (int64, error)
	CountByStatus(ctx context.Context) (map[entity.ProviderStatus]int, error)
	UpdateProfile(ctx context.Context, provider *entity.Provider) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ProviderStatus) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
}

type providerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewProviderRepository(db database.PgxIface, log *zap.Logger) ProviderRepository {
	return &providerRepository{
		db:  db,
		log: log.With(zap.String("repository", "provider")),
	}
}

func (r *providerRepository) WithTx(tx pgx.Tx) ProviderRepository {
	return &providerRepository{db: tx, log: r.log}
}

const providerColumns = `id, business_name, owner_name, email, password_hash, phone, category, city,
	description, status, email_verified, created_at, updated_at`

func scanProvider(row pgx.Row) (*entity.Provider, error) {
	var p entity.Provider
	err := row.Scan(
		&p.ID,
		&p.BusinessName,
		&p.OwnerName,
		&p.Email,
		&p.PasswordHash,
		&p.Phone,
		&p.Category,
		&p.City,
		&p.Description,
		&p.Status,
		&p.EmailVerified,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *providerRepository) Create(ctx context.Context, provider *entity.Provider) error {
	query := `
		INSERT INTO service_providers (id, business_name, owner_name, email, password_hash, phone,
		                               category, city, description, status, email_verified,
		                               created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		provider.ID,
		provider.BusinessName,
		provider.OwnerName,
		provider.Email,
		provider.PasswordHash,
		provider.Phone,
		provider.Category,
		provider.City,
		provider.Description,
		provider.Status,
		provider.EmailVerified,
		provider.CreatedAt,
		provider.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create provider",
			zap.Error(err),
			zap.String("email", provider.Email),
		)
		return wrapWriteErr(err, "create provider %s", provider.Email)
	}

	return nil
}

func (r *providerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM service_providers WHERE id = $1`

	provider, err := scanProvider(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find provider by ID",
			zap.Error(err),
			zap.String("provider_id", id.String()),
		)
		return nil, fmt.Errorf("find provider by ID %s: %w", id, err)
	}

	return provider, nil
}

func (r *providerRepository) FindByEmail(ctx context.Context, email string) (*entity.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM service_providers WHERE LOWER(email) = LOWER($1)`

	provider, err := scanProvider(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find provider by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find provider by email %s: %w", email, err)
	}

	return provider, nil
}

func providerFilter(status *entity.ProviderStatus) *whereBuilder {
	w := &whereBuilder{}
	if status != nil && *status != "" {
		w.add("status = ?", *status)
	}
	return w
}

func (r *providerRepository) FindAll(ctx context.Context, status *entity.ProviderStatus, limit, offset int) ([]*entity.Provider, error) {
	w := providerFilter(status)
	query := `SELECT ` + providerColumns + ` FROM service_providers` + w.sql() +
		` ORDER BY created_at DESC` + w.page(limit, offset)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to find providers",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find providers: %w", err)
	}
	defer rows.Close()

	var providers []*entity.Provider
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			r.log.Error("Failed to scan provider row", zap.Error(err))
			return nil, fmt.Errorf("scan provider row: %w", err)
		}
		providers = append(providers, provider)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate provider rows: %w", err)
	}

	return providers, nil
}

func (r *providerRepository) CountAll(ctx context.Context, status *entity.ProviderStatus) (int64, error) {
	w := providerFilter(status)
	query := `SELECT COUNT(*) FROM service_providers` + w.sql()

	var count int64
	if err := r.db.QueryRow(ctx, query, w.args...).Scan(&count); err != nil {
		r.log.Error("Failed to count providers", zap.Error(err))
		return 0, fmt.Errorf("count providers: %w", err)
	}

	return count, nil
}

func (r *providerRepository) CountByStatus(ctx context.Context) (map[entity.ProviderStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM service_providers GROUP BY status`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to count providers by status", zap.Error(err))
		return nil, fmt.Errorf("count providers by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.ProviderStatus]int)
	for rows.Next() {
		var status entity.ProviderStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan provider status count: %w", err)
		}
		counts[status] = n
	}

	return counts, rows.Err()
}

func (r *providerRepository) UpdateProfile(ctx context.Context, provider *entity.Provider) error {
	query := `
		UPDATE service_providers
		SET business_name = $2, owner_name = $3, phone = $4, category = $5,
		    city = $6, description = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		provider.ID,
		provider.BusinessName,
		provider.OwnerName,
		provider.Phone,
		provider.Category,
		provider.City,
		provider.Description,
		provider.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update provider",
			zap.Error(err),
			zap.String("provider_id", provider.ID.String()),
		)
		return fmt.Errorf("update provider %s: %w", provider.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("provider %s: %w", provider.ID, ErrNotFound)
	}

	return nil
}

func (r *providerRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE service_providers SET password_hash = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		r.log.Error("Failed to update provider password",
			zap.Error(err),
			zap.String("provider_id", id.String()),
		)
		return fmt.Errorf("update provider %s password: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("provider %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *providerRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ProviderStatus) error {
	query := `UPDATE service_providers SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update provider status",
			zap.Error(err),
			zap.String("provider_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update provider %s status to %s: %w", id, status, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("provider %s: %w", id, ErrNotFound)
	}

	r.log.Info("Provider status changed",
		zap.String("provider_id", id.String()),
		zap.String("status", string(status)),
	)
	return nil
}

func (r *providerRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE service_providers SET email_verified = TRUE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark provider email verified",
			zap.Error(err),
			zap.String("provider_id", id.String()),
		)
		return fmt.Errorf("verify provider %s email: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("provider %s: %w", id, ErrNotFound)
	}

	return nil
}
