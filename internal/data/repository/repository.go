package repository

import (
	"errors"
	"fmt"
	"strings"

	"wedding-marketplace/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned by writes that matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate wraps unique-constraint violations.
	ErrDuplicate = errors.New("duplicate record")
	// ErrStaleStatus means a guarded status update matched no row in the expected status.
	ErrStaleStatus = errors.New("status changed concurrently")
)

const uniqueViolation = "23505"

func wrapWriteErr(err error, format string, args ...any) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf(format+": %w", append(args, ErrDuplicate)...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// whereBuilder accumulates AND-ed predicates with numbered placeholders.
type whereBuilder struct {
	clauses []string
	args    []any
}

// add appends clause, replacing every "?" with the next placeholder bound to arg.
func (w *whereBuilder) add(clause string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.ReplaceAll(clause, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereBuilder) raw(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the clause.
func (w *whereBuilder) page(limit, offset int) string {
	w.args = append(w.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}

func likePattern(s string) string {
	return "%" + strings.TrimSpace(s) + "%"
}

type Repository struct {
	Customer CustomerRepository
	Provider ProviderRepository
	Admin    AdminRepository
	Service  ServiceRepository
	Media    MediaRepository
	Booking  BookingRepository
	Review   ReviewRepository
	Token    TokenRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Customer: NewCustomerRepository(db, log),
		Provider: NewProviderRepository(db, log),
		Admin:    NewAdminRepository(db, log),
		Service:  NewServiceRepository(db, log),
		Media:    NewMediaRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Review:   NewReviewRepository(db, log),
		Token:    NewTokenRepository(db, log),
	}
}
