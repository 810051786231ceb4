package usecase

import (
	"context"
	"testing"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCustomerProfile(t *testing.T) {
	h := newHarness(t)
	c := h.seedCustomer(t, "ayu@example.com")
	phone := "0811111111"

	resp, err := h.svc.Profile.UpdateCustomerProfile(context.Background(), c.ID, &request.UpdateCustomerProfileRequest{
		FullName: "  Ayu L.  ",
		Phone:    &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ayu L.", resp.FullName)

	got, err := h.svc.Profile.GetCustomerProfile(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ayu L.", got.FullName)
	assert.Equal(t, &phone, got.Phone)

	_, err = h.svc.Profile.UpdateCustomerProfile(context.Background(), c.ID, &request.UpdateCustomerProfileRequest{FullName: "   "})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestChangePasswordChecksCurrent(t *testing.T) {
	h := newHarness(t)
	c := h.seedCustomer(t, "ayu@example.com")
	actor := entity.Actor{ID: c.ID, Role: entity.RoleCustomer}

	err := h.svc.Profile.ChangePassword(context.Background(), actor, &request.ChangePasswordRequest{
		CurrentPassword: "not-it",
		NewPassword:     "fresh-password",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	err = h.svc.Profile.ChangePassword(context.Background(), actor, &request.ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     testPassword,
	})
	assert.ErrorIs(t, err, apperror.ErrValidation, "new password must differ")

	require.NoError(t, h.svc.Profile.ChangePassword(context.Background(), actor, &request.ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "fresh-password",
	}))
	assert.NoError(t, login(h, "ayu@example.com", "fresh-password", "customer"))
}
