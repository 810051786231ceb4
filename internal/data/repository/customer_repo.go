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

type CustomerRepository interface {
	WithTx(tx pgx.Tx) CustomerRepository
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, error)
	CountAll(ctx context.Context, search string) (int64, error)
	UpdateProfile(ctx context.Context, customer *entity.Customer) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type customerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

func (r *customerRepository) WithTx(tx pgx.Tx) CustomerRepository {
	return &customerRepository{db: tx, log: r.log}
}

const customerColumns = `id, full_name, email, password_hash, phone, email_verified, is_active, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID,
		&c.FullName,
		&c.Email,
		&c.PasswordHash,
		&c.Phone,
		&c.EmailVerified,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, full_name, email, password_hash, phone,
		                       email_verified, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.FullName,
		customer.Email,
		customer.PasswordHash,
		customer.Phone,
		customer.EmailVerified,
		customer.IsActive,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("email", customer.Email),
		)
		return wrapWriteErr(err, "create customer %s", customer.Email)
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by ID",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return nil, fmt.Errorf("find customer by ID %s: %w", id, err)
	}

	return customer, nil
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE LOWER(email) = LOWER($1)`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find customer by email %s: %w", email, err)
	}

	return customer, nil
}

func customerFilter(search string) *whereBuilder {
	w := &whereBuilder{}
	if search != "" {
		w.add("(full_name ILIKE ? OR email ILIKE ?)", likePattern(search))
	}
	return w
}

func (r *customerRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, error) {
	w := customerFilter(search)
	query := `SELECT ` + customerColumns + ` FROM customers` + w.sql() +
		` ORDER BY created_at DESC` + w.page(limit, offset)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to find customers",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find customers: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			r.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) CountAll(ctx context.Context, search string) (int64, error) {
	w := customerFilter(search)
	query := `SELECT COUNT(*) FROM customers` + w.sql()

	var count int64
	if err := r.db.QueryRow(ctx, query, w.args...).Scan(&count); err != nil {
		r.log.Error("Failed to count customers", zap.Error(err))
		return 0, fmt.Errorf("count customers: %w", err)
	}

	return count, nil
}

func (r *customerRepository) UpdateProfile(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET full_name = $2, phone = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.FullName,
		customer.Phone,
		customer.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()),
		)
		return fmt.Errorf("update customer %s: %w", customer.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", customer.ID, ErrNotFound)
	}

	return nil
}

func (r *customerRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE customers SET password_hash = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		r.log.Error("Failed to update customer password",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return fmt.Errorf("update customer %s password: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *customerRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE customers SET email_verified = TRUE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark customer email verified",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return fmt.Errorf("verify customer %s email: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *customerRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE customers SET is_active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to set customer active flag",
			zap.Error(err),
			zap.String("customer_id", id.String()),
			zap.Bool("active", active),
		)
		return fmt.Errorf("set customer %s active=%t: %w", id, active, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}

	r.log.Info("Customer active flag changed",
		zap.String("customer_id", id.String()),
		zap.Bool("active", active),
	)
	return nil
}
