package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// ==================== SINGLE-USE TOKENS ====================

// GenerateSecureToken returns a hex string of n random bytes.
func GenerateSecureToken(n int) (string, error) {
	if n <= 0 {
		n = 32
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ==================== BOOKING REFERENCE ====================

// GenerateBookingRef creates a human-friendly booking reference.
func GenerateBookingRef(now time.Time) string {
	// Format: WED-YYYYMMDD-RANDOM
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 1000000)
	}
	return fmt.Sprintf("WED-%s-%06d", now.Format("20060102"), n.Int64())
}
