// Package notification delivers best-effort booking and account messages by
// email and websocket push. Nothing here ever fails the request that triggered it.
package notification

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"wedding-marketplace/pkg/metrics"
	"wedding-marketplace/pkg/utils"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

var ErrMailerClosed = errors.New("mailer closed")

type Email struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, email Email) error
}

// NewSender returns an SMTP sender, or a log-only sender when no SMTP host is configured.
func NewSender(cfg utils.EmailConfig, log *zap.Logger) Sender {
	if cfg.Host == "" {
		log.Warn("SMTP host not configured, emails will only be logged")
		return &logSender{log: log.With(zap.String("sender", "mock"))}
	}
	return &smtpSender{cfg: cfg}
}

type smtpSender struct {
	cfg utils.EmailConfig
}

func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}

func (s *smtpSender) Send(_ context.Context, email Email) error {
	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", headerSafe(from))
	fmt.Fprintf(&sb, "To: %s\r\n", headerSafe(email.To))
	fmt.Fprintf(&sb, "Subject: %s\r\n", headerSafe(email.Subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(email.Body)
	sb.WriteString("\r\n")

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := smtp.SendMail(addr, auth, from, []string{email.To}, []byte(sb.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", email.To, err)
	}
	return nil
}

type logSender struct {
	log *zap.Logger
}

func (s *logSender) Send(_ context.Context, email Email) error {
	s.log.Info("[MOCK EMAIL]",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.String("body", email.Body))
	return nil
}

// Mailer drains a bounded queue with a fixed number of workers.
type Mailer struct {
	sender  Sender
	queue   chan Email
	timeout time.Duration
	log     *zap.Logger

	mu     sync.RWMutex
	closed bool
	wg     conc.WaitGroup
}

func NewMailer(sender Sender, workers, queueSize int, log *zap.Logger) *Mailer {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	m := &Mailer{
		sender:  sender,
		queue:   make(chan Email, queueSize),
		timeout: 30 * time.Second,
		log:     log.With(zap.String("component", "mailer")),
	}
	for i := 0; i < workers; i++ {
		m.wg.Go(m.work)
	}
	return m
}

// Enqueue never blocks; a full queue drops the email.
func (m *Mailer) Enqueue(email Email) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrMailerClosed
	}

	select {
	case m.queue <- email:
		metrics.SetEmailQueueDepth(len(m.queue))
		return nil
	default:
		metrics.RecordEmail("dropped")
		m.log.Warn("Email queue full, dropping email",
			zap.String("to", email.To),
			zap.String("subject", email.Subject))
		return fmt.Errorf("email queue full")
	}
}

func (m *Mailer) work() {
	for email := range m.queue {
		metrics.SetEmailQueueDepth(len(m.queue))

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		err := m.sender.Send(ctx, email)
		cancel()

		if err != nil {
			metrics.RecordEmail("failed")
			m.log.Error("Failed to send email", zap.String("to", email.To), zap.Error(err))
			continue
		}
		metrics.RecordEmail("sent")
	}
}

// Close stops accepting emails and waits for queued ones to be sent.
func (m *Mailer) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.queue)
	m.mu.Unlock()

	m.wg.Wait()
	m.log.Info("Mailer drained")
}
