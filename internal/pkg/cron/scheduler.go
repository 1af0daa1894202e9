package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// JobFunc is the unit of scheduled work.
type JobFunc func(ctx context.Context) error

// Scheduler wraps a cron runner with named jobs and slog reporting.
type Scheduler struct {
	c      *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	jobs   []namedJob
}

type namedJob struct {
	name string
	spec string
	fn   JobFunc
}

// NewScheduler creates a new job scheduler.
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		c:      cron.New(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job under a cron spec (e.g. "@hourly", "0 6 * * *").
func (s *Scheduler) AddJob(name string, spec string, fn JobFunc) error {
	_, err := s.c.AddFunc(spec, func() {
		s.executeJob(name, fn)
	})
	if err != nil {
		return err
	}

	s.jobs = append(s.jobs, namedJob{name: name, spec: spec, fn: fn})
	slog.Info("Cron job registered", "name", name, "spec", spec)
	return nil
}

// Start begins running all scheduled jobs.
func (s *Scheduler) Start() {
	s.c.Start()
	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	<-s.c.Stop().Done()
	slog.Info("Cron scheduler stopped")
}

// RunOnce runs all registered jobs immediately (useful for testing and
// for an initial pass on startup).
func (s *Scheduler) RunOnce(ctx context.Context) {
	for _, job := range s.jobs {
		if err := job.fn(ctx); err != nil {
			slog.Error("Cron job failed", "name", job.name, "error", err)
		}
	}
}

func (s *Scheduler) executeJob(name string, fn JobFunc) {
	start := time.Now()
	slog.Debug("Cron job starting", "name", name)

	if err := fn(s.ctx); err != nil {
		slog.Error("Cron job failed", "name", name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Cron job completed", "name", name, "duration", time.Since(start))
	}
}
