package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCORSOrigins(t *testing.T) {
	origins := ParseCORSOrigins("/api/admin=https://admin.example.com; /api=https://shop.example.com, https://pro.example.com")

	assert.Equal(t, []string{"https://admin.example.com"}, origins["/api/admin"])
	assert.Equal(t, []string{"https://shop.example.com", "https://pro.example.com"}, origins["/api"])
	assert.Empty(t, ParseCORSOrigins(""))
}

func TestValidateStructNotBlank(t *testing.T) {
	type payload struct {
		Reason string `validate:"required,notblank"`
	}

	errs := ValidateStruct(payload{Reason: "   "})
	require.Contains(t, errs, "Reason")
	assert.Equal(t, "This field is required", errs["Reason"])

	assert.Empty(t, ValidateStruct(payload{Reason: "change of plans"}))
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	type payload struct {
		EventTime string `json:"event_time" validate:"required,datetime=15:04"`
	}

	errs := ValidateStruct(payload{EventTime: "4pm"})
	assert.Equal(t, map[string]string{"event_time": "Must match format 15:04"}, errs)
}

func TestFormatValidationErrorsIsSorted(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{"b": "two", "a": "one"})
	assert.Equal(t, "a: one; b: two", msg)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), *d)

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDate("10/01/2025")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateSecureTokenIsUnique(t *testing.T) {
	a, err := GenerateSecureToken(32)
	require.NoError(t, err)
	b, err := GenerateSecureToken(32)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 3, CalculateTotalPages(21, 10))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
}
