package rental

import (
	"context"
	"errors"
	"time"

	"carrent/models"
)

// Sentinel errors surfaced by the booking transaction so the service layer
// can map them to its coded error set.
var (
	ErrCarNotFound    = errors.New("car not found")
	ErrCarUnavailable = errors.New("car unavailable for the requested window")
)

// Repository owns all rental rows and every status transition. Transitions
// are conditional writes: they only apply when the row still matches the
// expected predicate, and report whether they did. Replaying a transition is
// therefore a no-op, never an error — the caller decides what a lost race
// means.
type Repository interface {
	// CreateBooking inserts a PENDING rental after re-validating, under a
	// row lock on the car, that the car exists, is available, and has no
	// {PENDING, CONFIRMED} rental overlapping [StartDate, EndDate).
	CreateBooking(ctx context.Context, r *models.Rental) error

	GetByID(ctx context.Context, id uint) (*models.Rental, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Rental, error)

	// MarkSigned sets the signed milestone; it does not change status.
	MarkSigned(ctx context.Context, id uint, at time.Time) (bool, error)

	// ConfirmPaid moves PENDING -> CONFIRMED, sets paid_at, and flips the
	// car unavailable in the same transaction.
	ConfirmPaid(ctx context.Context, id uint, at time.Time) (bool, error)

	// FailPending moves PENDING -> FAILED. The car stays available.
	FailPending(ctx context.Context, id uint) (bool, error)

	// CancelPending moves PENDING -> CANCELLED with the given reason and
	// re-marks the car available in the same transaction, unless a
	// CONFIRMED rental still holds the car.
	CancelPending(ctx context.Context, id uint, reason string, at time.Time) (bool, error)

	// CancelIfStillUnsigned is CancelPending scoped to rows that are still
	// unsigned and older than cutoff at update time, so overlapping sweeps
	// cannot double-apply.
	CancelIfStillUnsigned(ctx context.Context, id uint, cutoff time.Time, reason string, at time.Time) (bool, error)

	// CancelIfStillUnpaid is the same guard for signed-but-unpaid rentals
	// whose signature is older than cutoff.
	CancelIfStillUnpaid(ctx context.Context, id uint, cutoff time.Time, reason string, at time.Time) (bool, error)

	// CompleteConfirmed moves CONFIRMED -> COMPLETED and re-marks the car
	// available in the same transaction.
	CompleteConfirmed(ctx context.Context, id uint) (bool, error)

	// StaleUnsigned lists PENDING rentals never signed and created before cutoff.
	StaleUnsigned(ctx context.Context, cutoff time.Time) ([]models.Rental, error)

	// StaleUnpaid lists PENDING rentals signed before cutoff but never paid.
	StaleUnpaid(ctx context.Context, cutoff time.Time) ([]models.Rental, error)

	// ElapsedConfirmed lists CONFIRMED rentals on unavailable cars whose
	// end date has passed.
	ElapsedConfirmed(ctx context.Context, now time.Time) ([]models.Rental, error)
}
