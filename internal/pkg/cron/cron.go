// Package cron runs named background jobs on fixed intervals and keeps
// their last-run state for the health report.
package cron

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status is the last known state of a job.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
)

// Job is a background task executed on a fixed interval. Fn runs once
// immediately at Start and then every Interval.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// JobInfo is the serializable state of one job.
type JobInfo struct {
	Name      string     `json:"name"`
	Status    Status     `json:"status"`
	Error     string     `json:"error,omitempty"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
}

type jobState struct {
	job       Job
	mu        sync.Mutex
	status    Status
	errMsg    string
	lastRunAt *time.Time
}

// Scheduler owns a set of interval jobs. Register before Start; the
// scheduler stops when the Start context is cancelled.
type Scheduler struct {
	mu     sync.RWMutex
	jobs   []*jobState
	logger *zap.Logger
}

func New(logger *zap.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

func (s *Scheduler) Register(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, &jobState{job: job, status: StatusIdle})
}

// Start launches every registered job in its own goroutine. Each job
// runs once right away so dependent caches are warm before the first
// tick.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, js := range s.jobs {
		go s.loop(ctx, js)
	}
}

func (s *Scheduler) loop(ctx context.Context, js *jobState) {
	s.run(ctx, js)

	ticker := time.NewTicker(js.job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.run(ctx, js)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, js *jobState) {
	js.mu.Lock()
	if js.status == StatusRunning {
		js.mu.Unlock()
		return
	}
	js.status = StatusRunning
	js.mu.Unlock()

	started := time.Now()
	err := js.job.Fn(ctx)

	js.mu.Lock()
	js.lastRunAt = &started
	if err != nil {
		js.status = StatusFailed
		js.errMsg = err.Error()
	} else {
		js.status = StatusOK
		js.errMsg = ""
	}
	js.mu.Unlock()

	if err != nil {
		s.logger.Warn("background job failed",
			zap.String("job", js.job.Name),
			zap.Error(err),
		)
	} else {
		s.logger.Debug("background job completed",
			zap.String("job", js.job.Name),
			zap.Duration("took", time.Since(started)),
		)
	}
}

// Jobs reports the current state of every registered job.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]JobInfo, 0, len(s.jobs))
	for _, js := range s.jobs {
		js.mu.Lock()
		infos = append(infos, JobInfo{
			Name:      js.job.Name,
			Status:    js.status,
			Error:     js.errMsg,
			LastRunAt: js.lastRunAt,
		})
		js.mu.Unlock()
	}
	return infos
}
