package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/pkg/token"
	"wedding-marketplace/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type harness struct {
	store    *memStore
	notifier *recordingNotifier
	clock    *testClock
	config   *utils.Config
	svc      *Service
}

const testPassword = "s3cret-pass"

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		store:    newMemStore(),
		notifier: newRecordingNotifier(),
		clock:    &testClock{now: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)},
		config: &utils.Config{
			JWT:   utils.JWTConfig{Secret: "test-secret", ExpiryHours: 24, Issuer: "test"},
			Token: utils.TokenConfig{ResetExpiryMinutes: 30, VerificationExpiryMinutes: 60},
		},
	}

	h.svc = NewService(Dependencies{
		Repo:        h.store.repository(),
		Tx:          fakeTransactor{},
		Tokens:      token.NewManager("test-secret", "test", 24*time.Hour).WithClock(h.clock.Now),
		Revocations: token.NewMemoryRevocationStore(),
		Notifier:    h.notifier,
		Config:      h.config,
		Log:         zap.NewNop(),
		Clock:       h.clock.Now,
	})
	return h
}

func (h *harness) seedCustomer(t *testing.T, email string) *entity.Customer {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)

	c := &entity.Customer{
		Base:          entity.NewBase(h.clock.Now()),
		FullName:      "Ayu Lestari",
		Email:         email,
		PasswordHash:  hash,
		EmailVerified: true,
		IsActive:      true,
	}
	require.NoError(t, h.store.repository().Customer.Create(context.Background(), c))
	return c
}

func (h *harness) seedProvider(t *testing.T, email string, status entity.ProviderStatus) *entity.Provider {
	t.Helper()
	p := &entity.Provider{
		Base:          entity.NewBase(h.clock.Now()),
		BusinessName:  "Bloom Decor",
		OwnerName:     "Rina",
		Email:         email,
		PasswordHash:  "unused",
		Category:      "decoration",
		City:          "Bandung",
		Status:        status,
		EmailVerified: true,
	}
	require.NoError(t, h.store.repository().Provider.Create(context.Background(), p))
	return p
}

func (h *harness) seedService(t *testing.T, provider *entity.Provider, active bool) *entity.Service {
	t.Helper()
	s := &entity.Service{
		Base:       entity.NewBase(h.clock.Now()),
		ProviderID: provider.ID,
		Title:      "Garden Wedding Package",
		Category:   "decoration",
		City:       "Bandung",
		BasePrice:  15000000,
		IsActive:   active,
	}
	require.NoError(t, h.store.repository().Service.Create(context.Background(), s))
	return s
}

func customerActor(c *entity.Customer) entity.Actor {
	return entity.Actor{ID: c.ID, Role: entity.RoleCustomer}
}

func providerActor(p *entity.Provider) entity.Actor {
	return entity.Actor{ID: p.ID, Role: entity.RoleProvider}
}
