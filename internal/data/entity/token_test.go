package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashTokenIsStable(t *testing.T) {
	a := HashToken("abc")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashToken("abc"))
	assert.NotEqual(t, a, HashToken("abd"))
}

func TestSingleUseTokenUsable(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	tok := &SingleUseToken{ExpiresAt: now.Add(time.Minute)}
	assert.True(t, tok.Usable(now))
	assert.False(t, tok.Usable(now.Add(time.Minute)))

	used := now
	tok.UsedAt = &used
	assert.False(t, tok.Usable(now))
}

func TestTokenKindTable(t *testing.T) {
	assert.Equal(t, "reset_tokens", TokenKindPasswordReset.Table())
	assert.Equal(t, "email_verification_tokens", TokenKindEmailVerification.Table())
}
