package usecase

import (
	"context"
	"fmt"
	"time"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/pkg/apperror"
	"wedding-marketplace/pkg/utils"

	"github.com/google/uuid"
)

// Notifier delivers best-effort messages about account and booking events.
// Implementations must not block the caller and never report failure.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *entity.Booking)
	BookingStatusChanged(ctx context.Context, booking *entity.Booking, change *entity.StatusChange)
	SendVerification(ctx context.Context, account *entity.Account, rawToken string)
	SendPasswordReset(ctx context.Context, account *entity.Account, rawToken string)
}

type nopNotifier struct{}

func (nopNotifier) BookingCreated(context.Context, *entity.Booking) {}
func (nopNotifier) BookingStatusChanged(context.Context, *entity.Booking, *entity.StatusChange) {
}
func (nopNotifier) SendVerification(context.Context, *entity.Account, string)  {}
func (nopNotifier) SendPasswordReset(context.Context, *entity.Account, string) {}

func validateRequest(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperror.Validation("validation failed", errs)
	}
	return nil
}

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid "+field, map[string]string{field: "Must be a valid UUID"})
	}
	return id, nil
}

// newSingleUseToken stores the hash of a fresh random token and returns the raw value.
func newSingleUseToken(ctx context.Context, tokens repository.TokenRepository, kind entity.TokenKind,
	account *entity.Account, ttl time.Duration, now time.Time) (string, error) {
	raw, err := utils.GenerateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("generate %s token: %w", kind, err)
	}

	record := &entity.SingleUseToken{
		BaseSimple:  entity.NewBaseSimple(now),
		AccountID:   account.ID,
		AccountRole: account.Role,
		TokenHash:   entity.HashToken(raw),
		ExpiresAt:   now.Add(ttl),
	}
	if err := tokens.Create(ctx, kind, record); err != nil {
		return "", err
	}
	return raw, nil
}
