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

type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error)
	FindByEmail(ctx context.Context, email string) (*entity.Admin, error)
	CountAll(ctx context.Context) (int64, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type adminRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewAdminRepository(db database.PgxIface, log *zap.Logger) AdminRepository {
	return &adminRepository{
		db:  db,
		log: log.With(zap.String("repository", "admin")),
	}
}

const adminColumns = `id, full_name, email, password_hash, created_at, updated_at`

func scanAdmin(row pgx.Row) (*entity.Admin, error) {
	var a entity.Admin
	if err := row.Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	query := `
		INSERT INTO admins (id, full_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		admin.ID,
		admin.FullName,
		admin.Email,
		admin.PasswordHash,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create admin", zap.Error(err), zap.String("email", admin.Email))
		return wrapWriteErr(err, "create admin %s", admin.Email)
	}

	return nil
}

func (r *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`

	admin, err := scanAdmin(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find admin by ID", zap.Error(err), zap.String("admin_id", id.String()))
		return nil, fmt.Errorf("find admin by ID %s: %w", id, err)
	}

	return admin, nil
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE LOWER(email) = LOWER($1)`

	admin, err := scanAdmin(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find admin by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find admin by email %s: %w", email, err)
	}

	return admin, nil
}

func (r *adminRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		r.log.Error("Failed to count admins", zap.Error(err))
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return count, nil
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE admins SET password_hash = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		r.log.Error("Failed to update admin password", zap.Error(err), zap.String("admin_id", id.String()))
		return fmt.Errorf("update admin %s password: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("admin %s: %w", id, ErrNotFound)
	}

	return nil
}
