// Package scheduler runs maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Job is one scheduled unit of work.
type Job struct {
	Name    string
	Spec    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Scheduler wraps a cron runner. Overlapping runs of the same job are skipped.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	runs   metric.Int64Counter

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// New creates a Scheduler. meter may be nil.
func New(logger *slog.Logger, meter metric.Meter) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("scheduler")
	}
	runs, _ := meter.Int64Counter("jobguard_scheduled_runs_total",
		metric.WithDescription("Scheduled job runs by job and outcome."))

	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		logger:  logger,
		runs:    runs,
		entries: make(map[string]cron.EntryID),
	}
}

// Add registers job. Specs accept the standard five fields and descriptors
// such as "@daily" or "@every 1h".
func (s *Scheduler) Add(job Job) error {
	if job.Run == nil {
		return fmt.Errorf("job %q has no run function", job.Name)
	}

	var running sync.Mutex
	id, err := s.cron.AddFunc(job.Spec, func() {
		if !running.TryLock() {
			s.logger.Warn("skipping overlapping run", "job", job.Name)
			return
		}
		defer running.Unlock()
		s.RunNow(context.Background(), job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %q: %w", job.Name, err)
	}

	s.mu.Lock()
	s.entries[job.Name] = id
	s.mu.Unlock()

	s.logger.Info("job scheduled", "job", job.Name, "spec", job.Spec)
	return nil
}

// RunNow executes job once on the calling goroutine.
func (s *Scheduler) RunNow(ctx context.Context, job Job) error {
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := job.Run(ctx)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		s.logger.Error("scheduled job failed", "job", job.Name, "error", err, "elapsed", time.Since(start))
	} else {
		s.logger.Info("scheduled job finished", "job", job.Name, "elapsed", time.Since(start))
	}
	s.runs.Add(ctx, 1, metric.WithAttributes(
		attribute.String("job", job.Name),
		attribute.String("outcome", outcome),
	))
	return err
}

// Next returns the next activation of the named job, or the zero time.
func (s *Scheduler) Next(name string) time.Time {
	s.mu.Lock()
	id, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop waits for running jobs until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
		return ctx.Err()
	}
}
