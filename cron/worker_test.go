package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"carrent/models"
	"carrent/services/booking"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sweepMock struct {
	autoCancelFn  func(ctx context.Context, now time.Time) (int, error)
	restoreFn     func(ctx context.Context, now time.Time) (int, error)
	autoCancelled int
	restored      int
}

var _ booking.BookingService = (*sweepMock)(nil)

func (m *sweepMock) CreateBooking(ctx context.Context, req booking.BookingRequest) (*booking.BookingResult, error) {
	return nil, nil
}
func (m *sweepMock) GetRental(ctx context.Context, id uint) (*models.Rental, error) {
	return nil, nil
}
func (m *sweepMock) ListUserRentals(ctx context.Context, userID uint) ([]models.Rental, error) {
	return nil, nil
}
func (m *sweepMock) ConfirmPayment(ctx context.Context, rentalID uint) error  { return nil }
func (m *sweepMock) FailPayment(ctx context.Context, rentalID uint) error     { return nil }
func (m *sweepMock) CompleteRental(ctx context.Context, rentalID uint) error  { return nil }
func (m *sweepMock) CancelBooking(ctx context.Context, rentalID, userID uint) error {
	return nil
}
func (m *sweepMock) AutoCancelStale(ctx context.Context, now time.Time) (int, error) {
	m.autoCancelled++
	if m.autoCancelFn == nil {
		return 0, nil
	}
	return m.autoCancelFn(ctx, now)
}
func (m *sweepMock) RestoreAvailability(ctx context.Context, now time.Time) (int, error) {
	m.restored++
	if m.restoreFn == nil {
		return 0, nil
	}
	return m.restoreFn(ctx, now)
}

func newWorker(lifecycle booking.BookingService) *Worker {
	return &Worker{
		Lifecycle:    lifecycle,
		Logger:       zap.NewNop(),
		AutoCancel:   10 * time.Minute,
		RestoreAvail: time.Hour,
	}
}

func TestWorkerStartStop(t *testing.T) {
	w := newWorker(&sweepMock{})
	require.NoError(t, w.Start())
	w.Stop()
}

func TestWorkerStopWithoutStart(t *testing.T) {
	w := newWorker(&sweepMock{})
	w.Stop()
}

func TestRunTickDelegatesToSweep(t *testing.T) {
	mock := &sweepMock{}
	w := newWorker(mock)

	w.runTick("auto-cancel", func(ctx context.Context, now time.Time) (int, error) {
		return w.Lifecycle.AutoCancelStale(ctx, now)
	})
	require.Equal(t, 1, mock.autoCancelled)
}

func TestRunTickPassesBoundedContext(t *testing.T) {
	w := newWorker(&sweepMock{})

	w.runTick("availability-restore", func(ctx context.Context, now time.Time) (int, error) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		require.WithinDuration(t, time.Now().Add(2*time.Minute), deadline, 5*time.Second)
		return 0, nil
	})
}

func TestRunTickSurvivesSweepError(t *testing.T) {
	mock := &sweepMock{autoCancelFn: func(ctx context.Context, now time.Time) (int, error) {
		return 0, errors.New("database gone")
	}}
	w := newWorker(mock)

	w.runTick("auto-cancel", func(ctx context.Context, now time.Time) (int, error) {
		return w.Lifecycle.AutoCancelStale(ctx, now)
	})
	require.Equal(t, 1, mock.autoCancelled)
}

func TestRunTickSurvivesSweepPanic(t *testing.T) {
	w := newWorker(&sweepMock{})

	require.NotPanics(t, func() {
		w.runTick("auto-cancel", func(ctx context.Context, now time.Time) (int, error) {
			panic("sweep blew up")
		})
	})
}
