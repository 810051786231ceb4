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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, filter entity.BookingFilter, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context, filter entity.BookingFilter) (int64, error)
	CountByStatus(ctx context.Context) (map[entity.BookingStatus]int, error)

	// ApplyStatusChange persists change only if the row is still in change.From.
	// It returns ErrStaleStatus when another request moved the booking first.
	ApplyStatusChange(ctx context.Context, change *entity.StatusChange) error
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `b.id, b.booking_ref, b.service_id, b.provider_id, b.customer_id, b.status,
	b.event_start_date, b.event_time, b.total_amount, b.customer_name, b.customer_email,
	b.customer_phone, b.guest_count, b.venue, b.notes, b.rejection_reason, b.cancellation_reason,
	b.cancelled_by, b.payment_status, b.status_changed_at, b.created_at, b.updated_at, s.title`

const bookingFrom = ` FROM bookings b JOIN services s ON s.id = b.service_id`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.BookingRef,
		&b.ServiceID,
		&b.ProviderID,
		&b.CustomerID,
		&b.Status,
		&b.EventStartDate,
		&b.EventTime,
		&b.TotalAmount,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.GuestCount,
		&b.Venue,
		&b.Notes,
		&b.RejectionReason,
		&b.CancellationReason,
		&b.CancelledBy,
		&b.PaymentStatus,
		&b.StatusChangedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.ServiceTitle,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_ref, service_id, provider_id, customer_id, status,
		                      event_start_date, event_time, total_amount, customer_name,
		                      customer_email, customer_phone, guest_count, venue, notes,
		                      payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingRef,
		booking.ServiceID,
		booking.ProviderID,
		booking.CustomerID,
		booking.Status,
		booking.EventStartDate,
		booking.EventTime,
		booking.TotalAmount,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.GuestCount,
		booking.Venue,
		booking.Notes,
		booking.PaymentStatus,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
			zap.String("customer_id", booking.CustomerID.String()),
		)
		return wrapWriteErr(err, "create booking %s", booking.BookingRef)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom + ` WHERE b.id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	return booking, nil
}

func bookingFilter(filter entity.BookingFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.ProviderID != nil {
		w.add("b.provider_id = ?", *filter.ProviderID)
	}
	if filter.CustomerID != nil {
		w.add("b.customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		w.add("b.status = ?", *filter.Status)
	}
	if filter.From != nil {
		w.add("b.event_start_date >= ?", *filter.From)
	}
	if filter.To != nil {
		w.add("b.event_start_date <= ?", *filter.To)
	}
	if filter.Search != "" {
		w.add("(b.booking_ref ILIKE ? OR b.customer_name ILIKE ? OR s.title ILIKE ?)", likePattern(filter.Search))
	}
	return w
}

func (r *bookingRepository) FindAll(ctx context.Context, filter entity.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	w := bookingFilter(filter)
	query := `SELECT ` + bookingColumns + bookingFrom + w.sql() +
		` ORDER BY b.created_at DESC` + w.page(limit, offset)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountAll(ctx context.Context, filter entity.BookingFilter) (int64, error) {
	w := bookingFilter(filter)
	query := `SELECT COUNT(*)` + bookingFrom + w.sql()

	var count int64
	if err := r.db.QueryRow(ctx, query, w.args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[entity.BookingStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM bookings GROUP BY status`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to count bookings by status", zap.Error(err))
		return nil, fmt.Errorf("count bookings by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.BookingStatus]int)
	for rows.Next() {
		var status entity.BookingStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan booking status count: %w", err)
		}
		counts[status] = n
	}

	return counts, rows.Err()
}

func (r *bookingRepository) ApplyStatusChange(ctx context.Context, change *entity.StatusChange) error {
	var rejectionReason, cancellationReason *string
	var cancelledBy *entity.Role

	switch change.To {
	case entity.BookingStatusRejected:
		rejectionReason = change.Reason
	case entity.BookingStatusCancelled:
		cancellationReason = change.Reason
		role := change.Actor.Role
		cancelledBy = &role
	}

	query := `
		UPDATE bookings
		SET status = $3,
		    rejection_reason = COALESCE($4, rejection_reason),
		    cancellation_reason = COALESCE($5, cancellation_reason),
		    cancelled_by = COALESCE($6, cancelled_by),
		    status_changed_at = $7,
		    updated_at = $7
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query,
		change.BookingID,
		change.From,
		change.To,
		rejectionReason,
		cancellationReason,
		cancelledBy,
		change.At,
	)
	if err != nil {
		r.log.Error("Failed to apply booking status change",
			zap.Error(err),
			zap.String("booking_id", change.BookingID.String()),
			zap.String("from", string(change.From)),
			zap.String("to", string(change.To)),
		)
		return fmt.Errorf("update booking %s status %s -> %s: %w", change.BookingID, change.From, change.To, err)
	}

	if result.RowsAffected() == 0 {
		r.log.Warn("Booking status guard matched no row",
			zap.String("booking_id", change.BookingID.String()),
			zap.String("expected", string(change.From)),
		)
		return fmt.Errorf("booking %s no longer %s: %w", change.BookingID, change.From, ErrStaleStatus)
	}

	return nil
}
