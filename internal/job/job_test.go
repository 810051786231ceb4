package job

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"wedding-marketplace/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePurger struct {
	kinds []entity.TokenKind
	err   error
}

func (f *fakePurger) PurgeExpired(_ context.Context, kind entity.TokenKind, _ time.Time) (int64, error) {
	f.kinds = append(f.kinds, kind)
	return 3, f.err
}

func TestPurgeTokensCoversBothKinds(t *testing.T) {
	p := &fakePurger{}
	err := PurgeTokens(p, time.Now, zap.NewNop())(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.TokenKind{entity.TokenKindPasswordReset, entity.TokenKindEmailVerification}, p.kinds)

	p = &fakePurger{err: errors.New("db down")}
	err = PurgeTokens(p, time.Now, zap.NewNop())(context.Background())
	assert.ErrorContains(t, err, "purge password_reset tokens")
}

type fakeCleaner struct{ idle time.Duration }

func (f *fakeCleaner) Cleanup(idle time.Duration) int {
	f.idle = idle
	return 2
}

func TestCleanupRateLimiter(t *testing.T) {
	c := &fakeCleaner{}
	require.NoError(t, CleanupRateLimiter(c, 30*time.Minute, zap.NewNop())(context.Background()))
	assert.Equal(t, 30*time.Minute, c.idle)
}

func TestSchedulerRunsAndRecovers(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	var runs atomic.Int32

	require.NoError(t, s.Add("tick", "@every 1s", func(context.Context) error {
		runs.Add(1)
		panic("boom")
	}))
	assert.Error(t, s.Add("broken", "not a spec", func(context.Context) error { return nil }))

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
