package cron

import (
	"context"
	"time"

	"carrent/services/booking"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Worker runs the two reconciliation sweeps on their own schedules. It is
// constructed once at startup with explicit dependencies; there is no
// package-level state. A failed or panicking tick is logged and isolated —
// the schedule keeps running.
type Worker struct {
	Lifecycle    booking.BookingService
	Logger       *zap.Logger
	AutoCancel   time.Duration
	RestoreAvail time.Duration

	c *cron.Cron
}

// Start registers both sweeps and launches the scheduler.
func (w *Worker) Start() error {
	w.c = cron.New()

	if _, err := w.c.AddFunc("@every "+w.AutoCancel.String(), func() {
		w.runTick("auto-cancel", func(ctx context.Context, now time.Time) (int, error) {
			return w.Lifecycle.AutoCancelStale(ctx, now)
		})
	}); err != nil {
		return err
	}

	if _, err := w.c.AddFunc("@every "+w.RestoreAvail.String(), func() {
		w.runTick("availability-restore", func(ctx context.Context, now time.Time) (int, error) {
			return w.Lifecycle.RestoreAvailability(ctx, now)
		})
	}); err != nil {
		return err
	}

	w.c.Start()
	w.Logger.Info("reconciliation worker started",
		zap.Duration("autoCancelEvery", w.AutoCancel),
		zap.Duration("restoreAvailabilityEvery", w.RestoreAvail))
	return nil
}

// Stop halts the schedule and waits for any in-flight tick to finish.
func (w *Worker) Stop() {
	if w.c == nil {
		return
	}
	<-w.c.Stop().Done()
}

// runTick executes one sweep with panic isolation and a bounded context.
func (w *Worker) runTick(name string, sweep func(ctx context.Context, now time.Time) (int, error)) {
	defer func() {
		if r := recover(); r != nil {
			w.Logger.Error("sweep panicked", zap.String("sweep", name), zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := sweep(ctx, time.Now())
	if err != nil {
		w.Logger.Error("sweep failed; will retry next tick",
			zap.String("sweep", name), zap.Error(err))
		return
	}
	if n > 0 {
		w.Logger.Info("sweep applied transitions",
			zap.String("sweep", name), zap.Int("count", n))
	}
}
