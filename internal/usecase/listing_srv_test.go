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

func serviceRequest(title string, price float64) *request.ServiceRequest {
	return &request.ServiceRequest{
		Title:     title,
		Category:  "catering",
		City:      "Yogyakarta",
		BasePrice: price,
	}
}

func TestProviderManagesOwnServices(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	owner := h.seedProvider(t, "owner@example.com", entity.ProviderStatusApproved)
	other := h.seedProvider(t, "other@example.com", entity.ProviderStatusApproved)

	created, err := h.svc.Listing.CreateService(ctx, owner.ID, serviceRequest("Javanese Buffet", 25000000))
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	_, err = h.svc.Listing.UpdateService(ctx, other.ID, created.ID, serviceRequest("Hijacked", 1))
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	updated, err := h.svc.Listing.UpdateService(ctx, owner.ID, created.ID, serviceRequest("Javanese Buffet Deluxe", 30000000))
	require.NoError(t, err)
	assert.Equal(t, "Javanese Buffet Deluxe", updated.Title)

	first, err := h.svc.Listing.AddMedia(ctx, owner.ID, created.ID, &request.MediaRequest{URL: "https://cdn.example.com/a.jpg", MediaType: "image"})
	require.NoError(t, err)
	second, err := h.svc.Listing.AddMedia(ctx, owner.ID, created.ID, &request.MediaRequest{URL: "https://cdn.example.com/b.mp4", MediaType: "video"})
	require.NoError(t, err)
	assert.Equal(t, first.SortOrder+1, second.SortOrder)

	_, err = h.svc.Listing.AddMedia(ctx, owner.ID, created.ID, &request.MediaRequest{URL: "x", MediaType: "audio"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	assert.ErrorIs(t, h.svc.Listing.RemoveMedia(ctx, other.ID, created.ID, first.ID), apperror.ErrUnauthorized)
	require.NoError(t, h.svc.Listing.RemoveMedia(ctx, owner.ID, created.ID, first.ID))

	detail, err := h.svc.Listing.GetService(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, detail.Media, 1)
	assert.Equal(t, "Bloom Decor", detail.Provider.BusinessName)

	require.NoError(t, h.svc.Listing.DeleteService(ctx, owner.ID, created.ID))
	_, err = h.svc.Listing.GetService(ctx, created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	mine, err := h.svc.Listing.ListProviderServices(ctx, owner.ID, &request.PaginatedRequest{})
	require.NoError(t, err)
	require.Len(t, mine.Data, 1)
	assert.False(t, mine.Data[0].IsActive, "providers still see deactivated services")
}

func TestSuspendedProviderCannotList(t *testing.T) {
	h := newHarness(t)
	p := h.seedProvider(t, "gone@example.com", entity.ProviderStatusSuspended)

	_, err := h.svc.Listing.CreateService(context.Background(), p.ID, serviceRequest("Anything", 10))
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestPublicListingHidesUnapprovedProviders(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	approved := h.seedProvider(t, "a@example.com", entity.ProviderStatusApproved)
	pending := h.seedProvider(t, "p@example.com", entity.ProviderStatusPending)

	visible := h.seedService(t, approved, true)
	h.seedService(t, approved, false)
	hidden := h.seedService(t, pending, true)

	list, err := h.svc.Listing.ListServices(ctx, &request.ServiceListRequest{})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, visible.ID.String(), list.Data[0].ID)

	_, err = h.svc.Listing.GetService(ctx, hidden.ID.String())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	minPrice, maxPrice := 20.0, 10.0
	_, err = h.svc.Listing.ListServices(ctx, &request.ServiceListRequest{MinPrice: &minPrice, MaxPrice: &maxPrice})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
