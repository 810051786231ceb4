package entity

import (
	"testing"
	"time"

	"wedding-marketplace/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(status BookingStatus) *Booking {
	return &Booking{
		Base:           NewBase(time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)),
		ServiceID:      uuid.New(),
		ProviderID:     uuid.New(),
		CustomerID:     uuid.New(),
		Status:         status,
		EventStartDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		EventTime:      "16:00",
		PaymentStatus:  PaymentStatusUnpaid,
	}
}

func providerOf(b *Booking) Actor { return Actor{ID: b.ProviderID, Role: RoleProvider} }
func customerOf(b *Booking) Actor { return Actor{ID: b.CustomerID, Role: RoleCustomer} }

var afterEvent = time.Date(2025, 1, 11, 12, 0, 0, 0, time.UTC)

func TestTransitionTable(t *testing.T) {
	statuses := []BookingStatus{
		BookingStatusPending, BookingStatusAccepted, BookingStatusRejected,
		BookingStatusCancelled, BookingStatusCompleted,
	}

	// every (status, action, role) outside the table must be refused
	legal := map[BookingStatus]map[BookingAction]map[Role]BookingStatus{
		BookingStatusPending: {
			ActionAccept: {RoleProvider: BookingStatusAccepted},
			ActionReject: {RoleProvider: BookingStatusRejected},
			ActionCancel: {RoleCustomer: BookingStatusCancelled},
		},
		BookingStatusAccepted: {
			ActionCancel:   {RoleCustomer: BookingStatusCancelled, RoleProvider: BookingStatusCancelled},
			ActionComplete: {RoleProvider: BookingStatusCompleted},
		},
	}

	for _, from := range statuses {
		for _, action := range bookingActions {
			for _, role := range []Role{RoleProvider, RoleCustomer} {
				b := newTestBooking(from)
				actor := providerOf(b)
				if role == RoleCustomer {
					actor = customerOf(b)
				}

				change, err := b.Transition(action, actor, "some reason", afterEvent)

				want, ok := legal[from][action][role]
				if ok {
					require.NoError(t, err, "%s %s by %s", from, action, role)
					assert.Equal(t, want, change.To)
					assert.Equal(t, from, change.From)
					continue
				}
				require.Error(t, err, "%s %s by %s", from, action, role)
				assert.Nil(t, change)
				assert.Equal(t, from, b.Status)
			}
		}
	}
}

func TestTerminalStatesNeverTransition(t *testing.T) {
	for _, status := range []BookingStatus{BookingStatusRejected, BookingStatusCancelled, BookingStatusCompleted} {
		b := newTestBooking(status)
		assert.True(t, status.IsTerminal())
		assert.Empty(t, b.AllowedActions(providerOf(b)))
		assert.Empty(t, b.AllowedActions(customerOf(b)))

		_, err := b.Transition(ActionCancel, customerOf(b), "late change", afterEvent)
		assert.ErrorIs(t, err, apperror.ErrInvalidStateTransition)
	}
}

func TestCompleteFromPendingIsInvalid(t *testing.T) {
	b := newTestBooking(BookingStatusPending)
	_, err := b.Transition(ActionComplete, providerOf(b), "", afterEvent)
	assert.ErrorIs(t, err, apperror.ErrInvalidStateTransition)
}

func TestWrongActorIsUnauthorized(t *testing.T) {
	stranger := Actor{ID: uuid.New(), Role: RoleProvider}
	otherCustomer := Actor{ID: uuid.New(), Role: RoleCustomer}

	cases := []struct {
		name   string
		status BookingStatus
		action BookingAction
		actor  func(b *Booking) Actor
	}{
		{"accept by customer", BookingStatusPending, ActionAccept, customerOf},
		{"accept by other provider", BookingStatusPending, ActionAccept, func(*Booking) Actor { return stranger }},
		{"reject by customer", BookingStatusPending, ActionReject, customerOf},
		{"complete by customer", BookingStatusAccepted, ActionComplete, customerOf},
		{"cancel by other customer", BookingStatusAccepted, ActionCancel, func(*Booking) Actor { return otherCustomer }},
		{"cancel by other provider", BookingStatusAccepted, ActionCancel, func(*Booking) Actor { return stranger }},
		{"accept by admin", BookingStatusPending, ActionAccept, func(b *Booking) Actor { return Actor{ID: b.ProviderID, Role: RoleAdmin} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBooking(tc.status)
			_, err := b.Transition(tc.action, tc.actor(b), "reason", afterEvent)
			assert.ErrorIs(t, err, apperror.ErrUnauthorized)
		})
	}
}

func TestReasonRequired(t *testing.T) {
	b := newTestBooking(BookingStatusPending)

	_, err := b.Transition(ActionReject, providerOf(b), "   ", afterEvent)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = b.Transition(ActionCancel, customerOf(b), "", afterEvent)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	change, err := b.Transition(ActionReject, providerOf(b), "  fully booked  ", afterEvent)
	require.NoError(t, err)
	require.NotNil(t, change.Reason)
	assert.Equal(t, "fully booked", *change.Reason)
}

func TestCompleteTiming(t *testing.T) {
	b := newTestBooking(BookingStatusAccepted)

	_, err := b.Transition(ActionComplete, providerOf(b), "", time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, apperror.ErrTooEarly)

	// same calendar day counts as started
	change, err := b.Transition(ActionComplete, providerOf(b), "", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, BookingStatusCompleted, change.To)
}

func TestProviderCannotCancelPending(t *testing.T) {
	b := newTestBooking(BookingStatusPending)
	_, err := b.Transition(ActionCancel, providerOf(b), "double booked", afterEvent)
	assert.ErrorIs(t, err, apperror.ErrInvalidStateTransition)
}

func TestUnknownAction(t *testing.T) {
	b := newTestBooking(BookingStatusPending)
	_, err := b.Transition(BookingAction("refund"), providerOf(b), "", afterEvent)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestApplyRecordsReasonAndCanceller(t *testing.T) {
	b := newTestBooking(BookingStatusAccepted)
	change, err := b.Transition(ActionCancel, customerOf(b), "change of plans", afterEvent)
	require.NoError(t, err)

	b.Apply(change)
	assert.Equal(t, BookingStatusCancelled, b.Status)
	require.NotNil(t, b.CancellationReason)
	assert.Equal(t, "change of plans", *b.CancellationReason)
	require.NotNil(t, b.CancelledBy)
	assert.Equal(t, RoleCustomer, *b.CancelledBy)
	assert.Equal(t, afterEvent, *b.StatusChangedAt)
}

func TestAllowedActions(t *testing.T) {
	b := newTestBooking(BookingStatusPending)
	assert.Equal(t, []BookingAction{ActionAccept, ActionReject}, b.AllowedActions(providerOf(b)))
	assert.Equal(t, []BookingAction{ActionCancel}, b.AllowedActions(customerOf(b)))

	b.Status = BookingStatusAccepted
	assert.Equal(t, []BookingAction{ActionCancel, ActionComplete}, b.AllowedActions(providerOf(b)))
}

func TestParseBookingStatus(t *testing.T) {
	s, ok := ParseBookingStatus(" Pending ")
	assert.True(t, ok)
	assert.Equal(t, BookingStatusPending, s)

	_, ok = ParseBookingStatus("confirmed")
	assert.False(t, ok)
}
