package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"slotserve/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ErrUnknownJob is returned by RunManually when the named job is not in the
// job table.
var ErrUnknownJob = errors.New("unknown job")

// JobParams are the job-specific knobs exposed through Status.
type JobParams struct {
	GracePeriodMinutes int  `json:"gracePeriodMinutes,omitempty"`
	NotifyClients      bool `json:"notifyClients,omitempty"`
	NotifyVendors      bool `json:"notifyVendors,omitempty"`
}

// JobFunc is one job's logic. The returned value is surfaced by RunManually.
type JobFunc func(ctx context.Context) (interface{}, error)

// Job is one named entry in the static job table.
type Job struct {
	Name     string
	Schedule string // cron spec, e.g. "@every 10m"
	Enabled  bool
	Params   JobParams
	Run      JobFunc
}

// JobStatus is the snapshot returned by Status.
type JobStatus struct {
	Name       string     `json:"name"`
	Schedule   string     `json:"schedule"`
	Enabled    bool       `json:"enabled"`
	Registered bool       `json:"registered"`
	Params     JobParams  `json:"params"`
	NextRun    *time.Time `json:"nextRun,omitempty"`
	PrevRun    *time.Time `json:"prevRun,omitempty"`
}

// Scheduler owns the periodic execution of the background jobs. It is an
// injected instance with an explicit lifecycle rather than a set of
// process-wide timers: Start registers every enabled job, Stop halts them all.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	jobs    []*Job
	byName  map[string]*Job
	entries map[string]cron.EntryID
	started bool
}

// New builds a scheduler over the given job table.
func New(jobs ...*Job) *Scheduler {
	s := &Scheduler{
		cron:    cron.New(),
		jobs:    jobs,
		byName:  make(map[string]*Job, len(jobs)),
		entries: make(map[string]cron.EntryID, len(jobs)),
	}
	for _, job := range jobs {
		s.byName[job.Name] = job
	}
	return s
}

// Start registers all enabled jobs with the periodic executor and starts it.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	logger := utils.GetLogger()

	if s.started {
		return nil
	}

	// Stop halts the run loop but leaves entries registered on the cron
	// instance, so a restart must begin from a fresh one or every job would
	// be added a second time.
	s.cron = cron.New()
	s.entries = make(map[string]cron.EntryID, len(s.jobs))

	for _, job := range s.jobs {
		if !job.Enabled {
			logger.Info("job disabled, not scheduling", zap.String("job", job.Name))
			continue
		}
		job := job
		id, err := s.cron.AddFunc(job.Schedule, func() { s.invoke(job) })
		if err != nil {
			return fmt.Errorf("failed to schedule job %s (%s): %w", job.Name, job.Schedule, err)
		}
		s.entries[job.Name] = id
		logger.Info("job scheduled",
			zap.String("job", job.Name), zap.String("schedule", job.Schedule))
	}

	s.cron.Start()
	s.started = true
	return nil
}

// Stop halts all registered jobs. In-flight runs finish on their own.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.cron.Stop()
	s.started = false
	utils.GetLogger().Info("job scheduler stopped")
}

// Status returns the enabled/schedule/parameter snapshot without triggering
// any execution.
func (s *Scheduler) Status() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]JobStatus, 0, len(s.jobs))
	for _, job := range s.jobs {
		status := JobStatus{
			Name:     job.Name,
			Schedule: job.Schedule,
			Enabled:  job.Enabled,
			Params:   job.Params,
		}
		if id, ok := s.entries[job.Name]; ok && s.started {
			entry := s.cron.Entry(id)
			status.Registered = true
			if !entry.Next.IsZero() {
				next := entry.Next
				status.NextRun = &next
			}
			if !entry.Prev.IsZero() {
				prev := entry.Prev
				status.PrevRun = &prev
			}
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// RunManually invokes one job's logic synchronously, bypassing the schedule.
// It works whether or not the scheduler is started and may overlap a scheduled
// run of the same job; the jobs are idempotent so that is safe.
func (s *Scheduler) RunManually(ctx context.Context, name string) (interface{}, error) {
	s.mu.Lock()
	job, ok := s.byName[name]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJob, name)
	}
	return job.Run(ctx)
}

// invoke runs one scheduled execution, isolating panics and errors so a
// failing run neither deregisters the job nor crashes the host process.
func (s *Scheduler) invoke(job *Job) {
	logger := utils.GetLogger()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked",
				zap.String("job", job.Name), zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	if _, err := job.Run(ctx); err != nil {
		logger.Error("job run failed",
			zap.String("job", job.Name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return
	}
	logger.Debug("job run complete",
		zap.String("job", job.Name),
		zap.Duration("elapsed", time.Since(start)))
}
