// Package scheduler runs the periodic jobs of the service. Each job has its
// own ticker and never overlaps with itself, while different jobs run
// independently of each other.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/lock"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrJobRunning is returned when a run of the job is already in progress
	ErrJobRunning = errors.New("job is already running")

	// ErrUnknownJob is returned when no job is registered under a name
	ErrUnknownJob = errors.New("unknown job")

	// ErrStarted is returned when the scheduler has already been started
	ErrStarted = errors.New("scheduler already started")
)

// RunFunc runs one batch of a job as of now
type RunFunc func(ctx context.Context, now time.Time) models.ProcessingReport

// Job is a batch run on a fixed interval
type Job struct {
	Name     string
	Interval time.Duration
	Run      RunFunc
}

type registeredJob struct {
	Job
	running *semaphore.Weighted
}

// Scheduler owns one ticker per registered job
type Scheduler struct {
	// Locker, when set, also keeps other instances from running a job while
	// it runs here
	Locker lock.Locker

	// Now is the clock handed to each run
	Now func() time.Time

	mtx    sync.Mutex
	jobs   map[string]*registeredJob
	cancel context.CancelFunc
	loops  *errgroup.Group
}

// New returns a scheduler with no jobs. locker may be nil.
func New(locker lock.Locker) *Scheduler {
	return &Scheduler{
		Locker: locker,
		Now:    func() time.Time { return time.Now().UTC() },
		jobs:   make(map[string]*registeredJob),
	}
}

// Register adds a job. Jobs must be registered before Start.
func (s *Scheduler) Register(job Job) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.loops != nil {
		return ErrStarted
	}
	if job.Name == "" || job.Run == nil {
		return errors.New("job must have a name and a run function")
	}
	if job.Interval <= 0 {
		return fmt.Errorf("job [%s] interval must be positive, got [%s]", job.Name, job.Interval)
	}
	if _, ok := s.jobs[job.Name]; ok {
		return fmt.Errorf("job [%s] is already registered", job.Name)
	}

	s.jobs[job.Name] = &registeredJob{Job: job, running: semaphore.NewWeighted(1)}
	return nil
}

// Start starts a ticker for every registered job. The first run of a job
// happens one interval after Start.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.loops != nil {
		return ErrStarted
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.loops = new(errgroup.Group)

	for _, job := range s.jobs {
		s.loops.Go(func() error {
			s.loop(ctx, job)
			return nil
		})
		log.Info("job scheduled", log.Data{"job": job.Name, "interval": job.Interval.String()})
	}

	return nil
}

// Stop stops every ticker and waits for runs in progress to end. A run in
// progress sees its context cancelled and stops after the record it is on.
func (s *Scheduler) Stop() {
	s.mtx.Lock()
	cancel, loops := s.cancel, s.loops
	s.mtx.Unlock()

	if loops == nil {
		return
	}

	cancel()
	_ = loops.Wait()
	log.Info("scheduler stopped")
}

// RunNow runs the named job immediately, unless it is already running
func (s *Scheduler) RunNow(ctx context.Context, name string) (models.ProcessingReport, error) {
	s.mtx.Lock()
	job, ok := s.jobs[name]
	s.mtx.Unlock()

	if !ok {
		return models.ProcessingReport{}, fmt.Errorf("%w: [%s]", ErrUnknownJob, name)
	}

	return s.run(ctx, job)
}

func (s *Scheduler) loop(ctx context.Context, job *registeredJob) {
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.run(ctx, job); errors.Is(err, ErrJobRunning) {
				log.Info("skipping tick, job is already running", log.Data{"job": job.Name})
			}
		}
	}
}

// run makes a single run of job. A run is skipped when another run of the
// same job holds the local semaphore or the shared lock.
func (s *Scheduler) run(ctx context.Context, job *registeredJob) (models.ProcessingReport, error) {
	now := s.Now()
	skipped := models.ProcessingReport{Job: job.Name, RanAt: now, Skipped: true}

	if !job.running.TryAcquire(1) {
		return skipped, ErrJobRunning
	}
	defer job.running.Release(1)

	runCtx := ctx
	if s.Locker != nil {
		lease, acquired, err := s.Locker.Acquire(ctx, job.Name, job.Interval)
		if err != nil {
			log.Error(fmt.Errorf("error acquiring job lock, skipping run: [%v]", err), log.Data{"job": job.Name})
			skipped.AddFailure("", models.StageLock, err)
			return skipped, nil
		}
		if !acquired {
			return skipped, ErrJobRunning
		}

		var stop func()
		runCtx, stop = holdLease(ctx, job.Name, job.Interval, lease)
		defer stop()
	}

	start := time.Now()
	report := job.Run(runCtx, now)
	log.Debug("job run finished", log.Data{"job": job.Name, "duration": time.Since(start).String()})

	return report, nil
}

// holdLease refreshes lease every third of its ttl until the returned stop
// func is called, which then releases it. The returned context is cancelled
// if the lease is lost, so the run stops at its next record.
func holdLease(ctx context.Context, name string, ttl time.Duration, lease lock.Lease) (context.Context, func()) {
	runCtx, cancel := context.WithCancel(ctx)
	every := max(ttl/3, time.Millisecond)

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)

		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				refreshCtx, cancelRefresh := context.WithTimeout(context.WithoutCancel(ctx), every)
				err := lease.Refresh(refreshCtx)
				cancelRefresh()

				if errors.Is(err, lock.ErrNotHeld) {
					log.Error(fmt.Errorf("job lock lost, stopping run: [%v]", err), log.Data{"job": name})
					cancel()
					return
				}
				if err != nil {
					log.Error(err, log.Data{"job": name})
				}
			}
		}
	}()

	return runCtx, func() {
		close(done)
		<-stopped
		cancel()

		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			log.Error(err, log.Data{"job": name})
		}
	}
}
