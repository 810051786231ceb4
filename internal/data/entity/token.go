package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

type TokenKind string

const (
	TokenKindPasswordReset     TokenKind = "password_reset"
	TokenKindEmailVerification TokenKind = "email_verification"
)

// Table returns the table that stores tokens of this kind.
func (k TokenKind) Table() string {
	if k == TokenKindEmailVerification {
		return "email_verification_tokens"
	}
	return "reset_tokens"
}

// SingleUseToken is persisted by hash only; the raw value leaves the system once, by email.
type SingleUseToken struct {
	BaseSimple
	AccountID   uuid.UUID  `db:"account_id"`
	AccountRole Role       `db:"account_role"`
	TokenHash   string     `db:"token_hash"`
	ExpiresAt   time.Time  `db:"expires_at"`
	UsedAt      *time.Time `db:"used_at"`
}

func (t *SingleUseToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}

func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
