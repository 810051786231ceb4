package notification

import (
	"context"
	"sync"
	"testing"

	"wedding-marketplace/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	mu      sync.Mutex
	sent    []Email
	started chan struct{}
	release chan struct{}
}

func (s *recordingSender) Send(_ context.Context, email Email) error {
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, email)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestMailerDeliversQueuedEmailsOnClose(t *testing.T) {
	sender := &recordingSender{}
	m := NewMailer(sender, 3, 10, zap.NewNop())

	for i := 0; i < 5; i++ {
		require.NoError(t, m.Enqueue(Email{To: "guest@example.com", Subject: "hello"}))
	}
	m.Close()

	assert.Equal(t, 5, sender.count())
	assert.ErrorIs(t, m.Enqueue(Email{To: "late@example.com"}), ErrMailerClosed)

	m.Close()
}

func TestMailerDropsWhenQueueFull(t *testing.T) {
	sender := &recordingSender{started: make(chan struct{}, 4), release: make(chan struct{})}
	m := NewMailer(sender, 1, 1, zap.NewNop())

	require.NoError(t, m.Enqueue(Email{To: "a@example.com"}))
	<-sender.started // the single worker is now busy

	require.NoError(t, m.Enqueue(Email{To: "b@example.com"}))
	assert.Error(t, m.Enqueue(Email{To: "c@example.com"}))

	close(sender.release)
	m.Close()
	assert.Equal(t, 2, sender.count())
}

func TestNewSenderFallsBackToLog(t *testing.T) {
	s := NewSender(utils.EmailConfig{}, zap.NewNop())
	_, ok := s.(*logSender)
	assert.True(t, ok)
	assert.NoError(t, s.Send(context.Background(), Email{To: "x@example.com"}))

	s = NewSender(utils.EmailConfig{Host: "smtp.example.com", Port: 587}, zap.NewNop())
	_, ok = s.(*smtpSender)
	assert.True(t, ok)
}

func TestHeaderSafeStripsLineBreaks(t *testing.T) {
	assert.Equal(t, "Hi  Bcc: x", headerSafe(" Hi\r\nBcc: x "))
}
