package entity

import (
	"strings"
	"time"

	"wedding-marketplace/pkg/apperror"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected,
		BookingStatusCancelled, BookingStatusCompleted:
		return status, true
	}
	return "", false
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusRejected || s == BookingStatusCancelled || s == BookingStatusCompleted
}

// PaymentStatus is recorded on bookings but no payment flow moves it.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type BookingAction string

const (
	ActionAccept   BookingAction = "accept"
	ActionReject   BookingAction = "reject"
	ActionCancel   BookingAction = "cancel"
	ActionComplete BookingAction = "complete"
)

var bookingActions = []BookingAction{ActionAccept, ActionReject, ActionCancel, ActionComplete}

func (a BookingAction) requiresReason() bool {
	return a == ActionReject || a == ActionCancel
}

type Booking struct {
	Base
	BookingRef         string        `db:"booking_ref"`
	ServiceID          uuid.UUID     `db:"service_id"`
	ProviderID         uuid.UUID     `db:"provider_id"`
	CustomerID         uuid.UUID     `db:"customer_id"`
	Status             BookingStatus `db:"status"`
	EventStartDate     time.Time     `db:"event_start_date"`
	EventTime          string        `db:"event_time"`
	TotalAmount        float64       `db:"total_amount"`
	CustomerName       string        `db:"customer_name"`
	CustomerEmail      string        `db:"customer_email"`
	CustomerPhone      string        `db:"customer_phone"`
	GuestCount         *int          `db:"guest_count"`
	Venue              *string       `db:"venue"`
	Notes              *string       `db:"notes"`
	RejectionReason    *string       `db:"rejection_reason"`
	CancellationReason *string       `db:"cancellation_reason"`
	CancelledBy        *Role         `db:"cancelled_by"`
	PaymentStatus      PaymentStatus `db:"payment_status"`
	StatusChangedAt    *time.Time    `db:"status_changed_at"`

	// ServiceTitle is filled by list and detail queries that join services.
	ServiceTitle string `db:"service_title"`
}

// BookingFilter narrows booking listings. Dates bound the event date, inclusive.
type BookingFilter struct {
	ProviderID *uuid.UUID
	CustomerID *uuid.UUID
	Status     *BookingStatus
	From       *time.Time
	To         *time.Time
	Search     string
}

// Actor is the authenticated party attempting a booking action.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// StatusChange is the outcome of a legal transition, ready to be persisted.
type StatusChange struct {
	BookingID uuid.UUID
	Action    BookingAction
	From      BookingStatus
	To        BookingStatus
	Actor     Actor
	Reason    *string
	At        time.Time
}

type transitionKey struct {
	from   BookingStatus
	action BookingAction
	role   Role
}

// The only place legal booking transitions are defined.
var transitions = map[transitionKey]BookingStatus{
	{BookingStatusPending, ActionAccept, RoleProvider}:    BookingStatusAccepted,
	{BookingStatusPending, ActionReject, RoleProvider}:    BookingStatusRejected,
	{BookingStatusPending, ActionCancel, RoleCustomer}:    BookingStatusCancelled,
	{BookingStatusAccepted, ActionCancel, RoleCustomer}:   BookingStatusCancelled,
	{BookingStatusAccepted, ActionCancel, RoleProvider}:   BookingStatusCancelled,
	{BookingStatusAccepted, ActionComplete, RoleProvider}: BookingStatusCompleted,
}

// isParty reports whether actor may attempt action on b at all.
func (b *Booking) isParty(action BookingAction, actor Actor) bool {
	isProvider := actor.Role == RoleProvider && actor.ID == b.ProviderID
	isCustomer := actor.Role == RoleCustomer && actor.ID == b.CustomerID

	if action == ActionCancel {
		return isProvider || isCustomer
	}
	return isProvider
}

// EventStarted reports whether now falls on or after the event date.
func (b *Booking) EventStarted(now time.Time) bool {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	ey, em, ed := b.EventStartDate.Date()
	eventDay := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)

	return !today.Before(eventDay)
}

// Transition validates action against the lifecycle rules. Checks run in order:
// action known, actor authorized, reason present, transition legal, event date reached.
func (b *Booking) Transition(action BookingAction, actor Actor, reason string, now time.Time) (*StatusChange, error) {
	known := false
	for _, a := range bookingActions {
		if a == action {
			known = true
			break
		}
	}
	if !known {
		return nil, apperror.Validation("unknown booking action", map[string]string{
			"action": "Must be one of: accept, reject, cancel, complete",
		})
	}

	if !b.isParty(action, actor) {
		return nil, apperror.Unauthorized("not allowed to %s booking %s", action, b.ID)
	}

	var reasonPtr *string
	if action.requiresReason() {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return nil, apperror.Validation("reason is required", map[string]string{
				"reason": "This field is required",
			})
		}
		reasonPtr = &reason
	}

	to, ok := transitions[transitionKey{from: b.Status, action: action, role: actor.Role}]
	if !ok {
		return nil, apperror.InvalidTransition("cannot %s a booking that is %s", action, b.Status)
	}

	if action == ActionComplete && !b.EventStarted(now) {
		return nil, apperror.TooEarly("cannot complete booking before event date %s",
			b.EventStartDate.Format("2006-01-02"))
	}

	return &StatusChange{
		BookingID: b.ID,
		Action:    action,
		From:      b.Status,
		To:        to,
		Actor:     actor,
		Reason:    reasonPtr,
		At:        now,
	}, nil
}

// Apply copies a persisted change onto the in-memory booking.
func (b *Booking) Apply(change *StatusChange) {
	b.Status = change.To
	b.UpdatedAt = change.At
	at := change.At
	b.StatusChangedAt = &at

	switch change.To {
	case BookingStatusRejected:
		b.RejectionReason = change.Reason
	case BookingStatusCancelled:
		b.CancellationReason = change.Reason
		role := change.Actor.Role
		b.CancelledBy = &role
	}
}

// AllowedActions lists what actor could attempt next, ignoring the event-date check.
func (b *Booking) AllowedActions(actor Actor) []BookingAction {
	var actions []BookingAction
	for _, action := range bookingActions {
		if !b.isParty(action, actor) {
			continue
		}
		if _, ok := transitions[transitionKey{from: b.Status, action: action, role: actor.Role}]; ok {
			actions = append(actions, action)
		}
	}
	return actions
}
