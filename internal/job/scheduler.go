// Package job runs periodic maintenance on cron schedules.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Func is one run of a job. Returned errors are logged, never retried.
type Func func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	log     *zap.Logger
}

func NewScheduler(log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		timeout: 5 * time.Minute,
		log:     log.With(zap.String("component", "scheduler")),
	}
}

// Add registers fn under spec, e.g. "@hourly" or "*/5 * * * *".
func (s *Scheduler) Add(name, spec string, fn Func) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(name, fn) })
	if err != nil {
		return fmt.Errorf("schedule job %s (%q): %w", name, spec, err)
	}
	s.log.Info("Job scheduled", zap.String("job", name), zap.String("spec", spec))
	return nil
}

func (s *Scheduler) run(name string, fn Func) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Job panicked", zap.String("job", name), zap.Any("panic", r))
		}
	}()

	if err := fn(ctx); err != nil {
		s.log.Error("Job failed", zap.String("job", name), zap.Error(err))
		return
	}
	s.log.Debug("Job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("Scheduler stop timed out with jobs still running")
	}
}
