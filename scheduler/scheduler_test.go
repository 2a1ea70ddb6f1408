package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/companieshouse/payments.gateway.ch.gov.uk/lock"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"

	. "github.com/smartystreets/goconvey/convey"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func reportingJob(name string, runs *int32) Job {
	return Job{
		Name:     name,
		Interval: time.Hour,
		Run: func(_ context.Context, now time.Time) models.ProcessingReport {
			if runs != nil {
				atomic.AddInt32(runs, 1)
			}
			return models.ProcessingReport{Job: name, RanAt: now, Succeeded: 1}
		},
	}
}

// blockingJob runs until release is closed, signalling started once running
func blockingJob(name string, started chan<- struct{}, release <-chan struct{}) Job {
	return Job{
		Name:     name,
		Interval: time.Hour,
		Run: func(_ context.Context, now time.Time) models.ProcessingReport {
			started <- struct{}{}
			<-release
			return models.ProcessingReport{Job: name, RanAt: now}
		},
	}
}

func newScheduler() *Scheduler {
	s := New(nil)
	s.Now = func() time.Time { return fixedNow }
	return s
}

type fakeLocker struct {
	acquired   bool
	err        error
	refreshErr error
	ttl        time.Duration
	refreshed  int32
	released   int32
}

func (f *fakeLocker) Acquire(_ context.Context, _ string, ttl time.Duration) (lock.Lease, bool, error) {
	if f.err != nil || !f.acquired {
		return nil, false, f.err
	}
	f.ttl = ttl
	return &fakeLease{locker: f}, true, nil
}

type fakeLease struct {
	locker *fakeLocker
}

func (f *fakeLease) Refresh(context.Context) error {
	atomic.AddInt32(&f.locker.refreshed, 1)
	return f.locker.refreshErr
}

func (f *fakeLease) Release(context.Context) error {
	atomic.AddInt32(&f.locker.released, 1)
	return nil
}

func TestUnitRegister(t *testing.T) {
	Convey("Jobs need a name, a run function and a positive interval", t, func() {
		s := newScheduler()

		So(s.Register(Job{Interval: time.Second, Run: reportingJob("x", nil).Run}), ShouldNotBeNil)
		So(s.Register(Job{Name: "x", Interval: time.Second}), ShouldNotBeNil)

		err := s.Register(Job{Name: "x", Run: reportingJob("x", nil).Run})
		So(err.Error(), ShouldEqual, "job [x] interval must be positive, got [0s]")
	})

	Convey("Job names are unique", t, func() {
		s := newScheduler()

		So(s.Register(reportingJob("refunds", nil)), ShouldBeNil)
		So(s.Register(reportingJob("refunds", nil)).Error(), ShouldEqual, "job [refunds] is already registered")
	})

	Convey("Jobs cannot be added once started", t, func() {
		s := newScheduler()
		So(s.Start(context.Background()), ShouldBeNil)
		defer s.Stop()

		So(s.Register(reportingJob("late", nil)), ShouldEqual, ErrStarted)
		So(s.Start(context.Background()), ShouldEqual, ErrStarted)
	})
}

func TestUnitRunNow(t *testing.T) {
	ctx := context.Background()

	Convey("An unknown job is rejected", t, func() {
		_, err := newScheduler().RunNow(ctx, "missing")
		So(errors.Is(err, ErrUnknownJob), ShouldBeTrue)
	})

	Convey("The job runs with the scheduler clock", t, func() {
		s := newScheduler()
		So(s.Register(reportingJob("refunds", nil)), ShouldBeNil)

		report, err := s.RunNow(ctx, "refunds")

		So(err, ShouldBeNil)
		So(report, ShouldResemble, models.ProcessingReport{Job: "refunds", RanAt: fixedNow, Succeeded: 1})
	})

	Convey("A job never overlaps with itself", t, func() {
		s := newScheduler()
		started := make(chan struct{}, 1)
		release := make(chan struct{})
		So(s.Register(blockingJob("webhooks", started, release)), ShouldBeNil)

		done := make(chan error)
		go func() {
			_, err := s.RunNow(ctx, "webhooks")
			done <- err
		}()
		<-started

		report, err := s.RunNow(ctx, "webhooks")
		So(err, ShouldEqual, ErrJobRunning)
		So(report.Skipped, ShouldBeTrue)

		close(release)
		So(<-done, ShouldBeNil)

		go func() { <-started }()
		_, err = s.RunNow(ctx, "webhooks")
		So(err, ShouldBeNil)
	})

	Convey("Different jobs run concurrently", t, func() {
		s := newScheduler()
		started := make(chan struct{}, 1)
		release := make(chan struct{})
		So(s.Register(blockingJob("webhooks", started, release)), ShouldBeNil)
		So(s.Register(reportingJob("refunds", nil)), ShouldBeNil)

		go s.RunNow(ctx, "webhooks")
		<-started

		report, err := s.RunNow(ctx, "refunds")
		So(err, ShouldBeNil)
		So(report.Succeeded, ShouldEqual, 1)

		close(release)
	})
}

func TestUnitRunNowWithLocker(t *testing.T) {
	ctx := context.Background()

	Convey("The shared lock is released after the run", t, func() {
		var runs int32
		locker := &fakeLocker{acquired: true}
		s := newScheduler()
		s.Locker = locker
		So(s.Register(reportingJob("refunds", &runs)), ShouldBeNil)

		_, err := s.RunNow(ctx, "refunds")

		So(err, ShouldBeNil)
		So(atomic.LoadInt32(&runs), ShouldEqual, 1)
		So(atomic.LoadInt32(&locker.released), ShouldEqual, 1)
		So(locker.ttl, ShouldEqual, time.Hour)
	})

	Convey("The shared lock is kept alive while a run outlasts its ttl", t, func() {
		var cancelled atomic.Bool
		locker := &fakeLocker{acquired: true}
		s := newScheduler()
		s.Locker = locker
		So(s.Register(Job{
			Name:     "webhooks",
			Interval: 30 * time.Millisecond,
			Run: func(ctx context.Context, now time.Time) models.ProcessingReport {
				time.Sleep(150 * time.Millisecond)
				cancelled.Store(ctx.Err() != nil)
				return models.ProcessingReport{Job: "webhooks", RanAt: now, Succeeded: 1}
			},
		}), ShouldBeNil)

		_, err := s.RunNow(ctx, "webhooks")

		So(err, ShouldBeNil)
		So(cancelled.Load(), ShouldBeFalse)
		So(atomic.LoadInt32(&locker.refreshed), ShouldBeGreaterThanOrEqualTo, 2)
		So(atomic.LoadInt32(&locker.released), ShouldEqual, 1)

		refreshes := atomic.LoadInt32(&locker.refreshed)
		time.Sleep(50 * time.Millisecond)
		So(atomic.LoadInt32(&locker.refreshed), ShouldEqual, refreshes)
	})

	Convey("A run whose lock is lost is cancelled", t, func() {
		locker := &fakeLocker{acquired: true, refreshErr: lock.ErrNotHeld}
		s := newScheduler()
		s.Locker = locker
		So(s.Register(Job{
			Name:     "webhooks",
			Interval: 30 * time.Millisecond,
			Run: func(ctx context.Context, now time.Time) models.ProcessingReport {
				select {
				case <-ctx.Done():
					return models.ProcessingReport{Job: "webhooks", RanAt: now, Failed: 1}
				case <-time.After(2 * time.Second):
					return models.ProcessingReport{Job: "webhooks", RanAt: now, Succeeded: 1}
				}
			},
		}), ShouldBeNil)

		report, err := s.RunNow(ctx, "webhooks")

		So(err, ShouldBeNil)
		So(report.Failed, ShouldEqual, 1)
		So(atomic.LoadInt32(&locker.refreshed), ShouldEqual, 1)
		So(atomic.LoadInt32(&locker.released), ShouldEqual, 1)
	})

	Convey("A failed refresh that still holds the lock lets the run finish", t, func() {
		var cancelled atomic.Bool
		locker := &fakeLocker{acquired: true, refreshErr: errors.New("i/o timeout")}
		s := newScheduler()
		s.Locker = locker
		So(s.Register(Job{
			Name:     "webhooks",
			Interval: 30 * time.Millisecond,
			Run: func(ctx context.Context, now time.Time) models.ProcessingReport {
				time.Sleep(100 * time.Millisecond)
				cancelled.Store(ctx.Err() != nil)
				return models.ProcessingReport{Job: "webhooks", RanAt: now}
			},
		}), ShouldBeNil)

		_, err := s.RunNow(ctx, "webhooks")

		So(err, ShouldBeNil)
		So(cancelled.Load(), ShouldBeFalse)
		So(atomic.LoadInt32(&locker.refreshed), ShouldBeGreaterThanOrEqualTo, 1)
	})

	Convey("A job locked by another instance is skipped", t, func() {
		var runs int32
		s := newScheduler()
		s.Locker = &fakeLocker{acquired: false}
		So(s.Register(reportingJob("refunds", &runs)), ShouldBeNil)

		report, err := s.RunNow(ctx, "refunds")

		So(err, ShouldEqual, ErrJobRunning)
		So(report.Skipped, ShouldBeTrue)
		So(atomic.LoadInt32(&runs), ShouldEqual, 0)
	})

	Convey("A lock error skips the run and is reported", t, func() {
		var runs int32
		s := newScheduler()
		s.Locker = &fakeLocker{err: errors.New("redis unavailable")}
		So(s.Register(reportingJob("refunds", &runs)), ShouldBeNil)

		report, err := s.RunNow(ctx, "refunds")

		So(err, ShouldBeNil)
		So(report.Skipped, ShouldBeTrue)
		So(report.Failures, ShouldResemble, []models.RecordFailure{{Stage: models.StageLock, Error: "redis unavailable"}})
		So(atomic.LoadInt32(&runs), ShouldEqual, 0)
	})
}

func TestUnitStartStop(t *testing.T) {
	Convey("Jobs run on their ticker until stopped", t, func() {
		var runs int32
		s := newScheduler()
		job := reportingJob("refunds", &runs)
		job.Interval = 5 * time.Millisecond
		So(s.Register(job), ShouldBeNil)

		So(s.Start(context.Background()), ShouldBeNil)
		deadline := time.Now().Add(2 * time.Second)
		for atomic.LoadInt32(&runs) < 2 && time.Now().Before(deadline) {
			time.Sleep(time.Millisecond)
		}
		s.Stop()

		stopped := atomic.LoadInt32(&runs)
		So(stopped, ShouldBeGreaterThanOrEqualTo, 2)

		time.Sleep(20 * time.Millisecond)
		So(atomic.LoadInt32(&runs), ShouldEqual, stopped)
	})

	Convey("Stop waits for the run in progress", t, func() {
		var finished int32
		started := make(chan struct{}, 1)
		s := newScheduler()
		So(s.Register(Job{
			Name:     "webhooks",
			Interval: 5 * time.Millisecond,
			Run: func(ctx context.Context, now time.Time) models.ProcessingReport {
				select {
				case started <- struct{}{}:
				default:
				}
				<-ctx.Done()
				time.Sleep(10 * time.Millisecond)
				atomic.StoreInt32(&finished, 1)
				return models.ProcessingReport{}
			},
		}), ShouldBeNil)

		So(s.Start(context.Background()), ShouldBeNil)
		<-started
		s.Stop()

		So(atomic.LoadInt32(&finished), ShouldEqual, 1)
	})

	Convey("Stopping a scheduler that never started is a no-op", t, func() {
		newScheduler().Stop()
	})
}
