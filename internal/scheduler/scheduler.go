// Package scheduler runs registered collectors on fixed intervals and feeds
// each snapshot through the reconciliation engine.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"alerts-srv/internal/alert"
	"alerts-srv/pkg/discord"
	pkgLog "alerts-srv/pkg/log"
)

// CollectorFunc fetches the current snapshot for one alert type from an
// external system.
type CollectorFunc func(ctx context.Context) ([]alert.SnapshotEntry, error)

// Job is one recurring collection run.
type Job struct {
	Type    string
	Mode    alert.SyncMode
	Every   time.Duration
	Collect CollectorFunc
}

// Registry accumulates jobs before the scheduler starts.
type Registry struct {
	jobs []Job
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(job Job) error {
	if job.Type == "" {
		return alert.ErrTypeRequired
	}
	if !job.Mode.IsValid() {
		return fmt.Errorf("%w: %q", alert.ErrUnknownSyncMode, job.Mode)
	}
	if job.Every <= 0 {
		return fmt.Errorf("job %q: interval must be positive", job.Type)
	}
	if job.Collect == nil {
		return fmt.Errorf("job %q: collector is required", job.Type)
	}
	r.jobs = append(r.jobs, job)
	return nil
}

func (r *Registry) Jobs() []Job {
	return r.jobs
}

// Scheduler drives the registered jobs. Collector or synchronization failures
// are reported and the job keeps its schedule.
type Scheduler struct {
	l        pkgLog.Logger
	uc       alert.UseCase
	reporter discord.IDiscord
}

// New creates a scheduler. reporter may be nil, in which case failures are
// only logged.
func New(l pkgLog.Logger, uc alert.UseCase, reporter discord.IDiscord) *Scheduler {
	return &Scheduler{l: l, uc: uc, reporter: reporter}
}

// Run starts one goroutine per job and blocks until ctx is cancelled. Every
// job fires once immediately, then on its interval.
func (s *Scheduler) Run(ctx context.Context, jobs []Job) {
	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			s.runJob(ctx, job)
		}(job)
	}
	wg.Wait()
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	ticker := time.NewTicker(job.Every)
	defer ticker.Stop()

	s.runOnce(ctx, job)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, job)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, job Job) {
	entries, err := job.Collect(ctx)
	if err != nil {
		s.reportFailure(ctx, job, "collect", err)
		return
	}

	report, err := s.uc.Synchronize(ctx, job.Mode, job.Type, entries)
	if err != nil {
		s.reportFailure(ctx, job, "synchronize", err)
		return
	}

	if len(report.Failures) > 0 {
		s.l.Warnf(ctx, "scheduler: job %q: %d entries skipped", job.Type, len(report.Failures))
	}
}

func (s *Scheduler) reportFailure(ctx context.Context, job Job, stage string, err error) {
	s.l.Errorf(ctx, "internal.scheduler.runOnce.%s: job %q: %v", stage, job.Type, err)

	if s.reporter == nil {
		return
	}
	title := fmt.Sprintf("Alert sync failed: %s", job.Type)
	desc := fmt.Sprintf("Stage %q failed for the %s collector (mode %s).", stage, job.Type, job.Mode)
	if sendErr := s.reporter.SendError(ctx, title, desc, err); sendErr != nil {
		s.l.Errorf(ctx, "internal.scheduler.reportFailure.SendError: %v", sendErr)
	}
}
