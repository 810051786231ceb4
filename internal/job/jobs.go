package job

import (
	"context"
	"fmt"
	"time"

	"wedding-marketplace/internal/data/entity"

	"go.uber.org/zap"
)

type TokenPurger interface {
	PurgeExpired(ctx context.Context, kind entity.TokenKind, now time.Time) (int64, error)
}

// PurgeTokens deletes used and expired reset and verification tokens.
func PurgeTokens(tokens TokenPurger, now func() time.Time, log *zap.Logger) Func {
	return func(ctx context.Context) error {
		for _, kind := range []entity.TokenKind{entity.TokenKindPasswordReset, entity.TokenKindEmailVerification} {
			n, err := tokens.PurgeExpired(ctx, kind, now())
			if err != nil {
				return fmt.Errorf("purge %s tokens: %w", kind, err)
			}
			if n > 0 {
				log.Info("Purged tokens", zap.String("kind", string(kind)), zap.Int64("count", n))
			}
		}
		return nil
	}
}

type ClientCleaner interface {
	Cleanup(idle time.Duration) int
}

// CleanupRateLimiter forgets clients that have been idle longer than idle.
func CleanupRateLimiter(limiter ClientCleaner, idle time.Duration, log *zap.Logger) Func {
	return func(context.Context) error {
		if n := limiter.Cleanup(idle); n > 0 {
			log.Debug("Rate limiter clients evicted", zap.Int("count", n))
		}
		return nil
	}
}
