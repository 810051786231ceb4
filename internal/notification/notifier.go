package notification

import (
	"context"
	"fmt"

	"wedding-marketplace/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Queue accepts emails for asynchronous delivery.
type Queue interface {
	Enqueue(email Email) error
}

// ProviderFinder resolves the provider contact for booking emails.
type ProviderFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error)
}

// Publisher pushes realtime events to connected accounts.
type Publisher interface {
	Publish(key string, event Event)
}

// Notifier turns account and booking events into emails and websocket pushes.
type Notifier struct {
	mail      Queue
	push      Publisher
	providers ProviderFinder
	baseURL   string
	log       *zap.Logger
}

func NewNotifier(mail Queue, push Publisher, providers ProviderFinder, baseURL string, log *zap.Logger) *Notifier {
	return &Notifier{
		mail:      mail,
		push:      push,
		providers: providers,
		baseURL:   baseURL,
		log:       log.With(zap.String("component", "notifier")),
	}
}

func (n *Notifier) enqueue(email Email) {
	if email.To == "" {
		return
	}
	if err := n.mail.Enqueue(email); err != nil {
		n.log.Warn("Email not queued", zap.String("subject", email.Subject), zap.Error(err))
	}
}

func (n *Notifier) providerEmail(ctx context.Context, id uuid.UUID) string {
	p, err := n.providers.FindByID(ctx, id)
	if err != nil {
		n.log.Warn("Failed to look up provider for notification", zap.String("provider_id", id.String()), zap.Error(err))
		return ""
	}
	if p == nil {
		return ""
	}
	return p.Email
}

func bookingEvent(kind string, b *entity.Booking, reason *string) Event {
	return Event{
		Type:       kind,
		BookingID:  b.ID.String(),
		BookingRef: b.BookingRef,
		Status:     b.Status,
		Reason:     reason,
		At:         b.UpdatedAt,
	}
}

func (n *Notifier) BookingCreated(ctx context.Context, b *entity.Booking) {
	n.push.Publish(ClientKey(entity.RoleProvider, b.ProviderID), bookingEvent("booking.created", b, nil))

	n.enqueue(Email{
		To:      n.providerEmail(ctx, b.ProviderID),
		Subject: fmt.Sprintf("New booking request %s", b.BookingRef),
		Body: fmt.Sprintf("%s requested \"%s\" on %s at %s.\nReview it at %s/provider/bookings/%s\n",
			b.CustomerName, b.ServiceTitle, b.EventStartDate.Format("2006-01-02"), b.EventTime, n.baseURL, b.ID),
	})
}

var statusSubjects = map[entity.BookingStatus]string{
	entity.BookingStatusAccepted:  "Your booking %s was accepted",
	entity.BookingStatusRejected:  "Your booking %s was declined",
	entity.BookingStatusCancelled: "Booking %s was cancelled",
	entity.BookingStatusCompleted: "Booking %s is completed",
}

// BookingStatusChanged tells the counterparty of the actor what happened.
func (n *Notifier) BookingStatusChanged(ctx context.Context, b *entity.Booking, change *entity.StatusChange) {
	event := bookingEvent("booking.status_changed", b, change.Reason)
	n.push.Publish(ClientKey(entity.RoleCustomer, b.CustomerID), event)
	n.push.Publish(ClientKey(entity.RoleProvider, b.ProviderID), event)

	to := b.CustomerEmail
	link := fmt.Sprintf("%s/customer/bookings/%s", n.baseURL, b.ID)
	if change.Actor.Role == entity.RoleCustomer {
		to = n.providerEmail(ctx, b.ProviderID)
		link = fmt.Sprintf("%s/provider/bookings/%s", n.baseURL, b.ID)
	}

	body := fmt.Sprintf("Booking %s for \"%s\" on %s is now %s.\n",
		b.BookingRef, b.ServiceTitle, b.EventStartDate.Format("2006-01-02"), b.Status)
	if change.Reason != nil {
		body += fmt.Sprintf("Reason: %s\n", *change.Reason)
	}
	body += "Details: " + link + "\n"

	n.enqueue(Email{
		To:      to,
		Subject: fmt.Sprintf(statusSubjects[change.To], b.BookingRef),
		Body:    body,
	})
}

func (n *Notifier) SendVerification(_ context.Context, account *entity.Account, rawToken string) {
	n.enqueue(Email{
		To:      account.Email,
		Subject: "Verify your email address",
		Body: fmt.Sprintf("Hi %s,\n\nConfirm your email address by opening:\n%s/verify-email?token=%s\n",
			account.DisplayName, n.baseURL, rawToken),
	})
}

func (n *Notifier) SendPasswordReset(_ context.Context, account *entity.Account, rawToken string) {
	n.enqueue(Email{
		To:      account.Email,
		Subject: "Reset your password",
		Body: fmt.Sprintf("Hi %s,\n\nReset your password here:\n%s/reset-password?token=%s&role=%s\n\n"+
			"If you did not ask for this, ignore this email.\n",
			account.DisplayName, n.baseURL, rawToken, account.Role),
	})
}
