package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TokenRepository stores single-use reset and verification tokens by hash.
type TokenRepository interface {
	WithTx(tx pgx.Tx) TokenRepository
	Create(ctx context.Context, kind entity.TokenKind, token *entity.SingleUseToken) error
	FindUsable(ctx context.Context, kind entity.TokenKind, tokenHash string, now time.Time) (*entity.SingleUseToken, error)
	// Consume marks the token used and returns it, or nil when it was already used or expired.
	Consume(ctx context.Context, kind entity.TokenKind, tokenHash string, now time.Time) (*entity.SingleUseToken, error)
	PurgeExpired(ctx context.Context, kind entity.TokenKind, now time.Time) (int64, error)
}

type tokenRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTokenRepository(db database.PgxIface, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "token")),
	}
}

func (r *tokenRepository) WithTx(tx pgx.Tx) TokenRepository {
	return &tokenRepository{db: tx, log: r.log}
}

func scanToken(row pgx.Row) (*entity.SingleUseToken, error) {
	var t entity.SingleUseToken
	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.AccountRole,
		&t.TokenHash,
		&t.ExpiresAt,
		&t.UsedAt,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tokenRepository) Create(ctx context.Context, kind entity.TokenKind, token *entity.SingleUseToken) error {
	query := `
		INSERT INTO ` + kind.Table() + ` (id, account_id, account_role, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.AccountID,
		token.AccountRole,
		token.TokenHash,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create token",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.String("account_id", token.AccountID.String()),
		)
		return fmt.Errorf("create %s token for %s: %w", kind, token.AccountID, err)
	}

	return nil
}

func (r *tokenRepository) FindUsable(ctx context.Context, kind entity.TokenKind, tokenHash string, now time.Time) (*entity.SingleUseToken, error) {
	query := `
		SELECT id, account_id, account_role, token_hash, expires_at, used_at, created_at
		FROM ` + kind.Table() + `
		WHERE token_hash = $1
		  AND used_at IS NULL
		  AND expires_at > $2
	`

	token, err := scanToken(r.db.QueryRow(ctx, query, tokenHash, now))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find usable token", zap.Error(err), zap.String("kind", string(kind)))
		return nil, fmt.Errorf("find %s token: %w", kind, err)
	}

	return token, nil
}

func (r *tokenRepository) Consume(ctx context.Context, kind entity.TokenKind, tokenHash string, now time.Time) (*entity.SingleUseToken, error) {
	query := `
		UPDATE ` + kind.Table() + `
		SET used_at = $2
		WHERE token_hash = $1
		  AND used_at IS NULL
		  AND expires_at > $2
		RETURNING id, account_id, account_role, token_hash, expires_at, used_at, created_at
	`

	token, err := scanToken(r.db.QueryRow(ctx, query, tokenHash, now))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to consume token", zap.Error(err), zap.String("kind", string(kind)))
		return nil, fmt.Errorf("consume %s token: %w", kind, err)
	}

	return token, nil
}

func (r *tokenRepository) PurgeExpired(ctx context.Context, kind entity.TokenKind, now time.Time) (int64, error) {
	query := `DELETE FROM ` + kind.Table() + ` WHERE used_at IS NOT NULL OR expires_at <= $1`

	result, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to purge tokens", zap.Error(err), zap.String("kind", string(kind)))
		return 0, fmt.Errorf("purge %s tokens: %w", kind, err)
	}

	return result.RowsAffected(), nil
}
