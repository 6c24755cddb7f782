package booking

import (
	"context"
	"errors"
	"time"

	"carrent/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// System reasons recorded when the sweep expires a rental. The unsigned vs
// unpaid distinction is derived from whether signed_at was set when the
// cancellation landed.
const (
	ReasonNotSigned = "cancelled by system: contract not signed within the signing deadline"
	ReasonNotPaid   = "cancelled by system: rental not paid within the payment deadline"
	ReasonCustomer  = "cancelled by customer"
)

// Deadlines configures how long a PENDING rental may wait for its signature
// and, once signed, for its payment.
type Deadlines struct {
	Signing time.Duration
	Payment time.Duration
}

func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, rentalID uint) error {
	applied, err := s.Rentals.ConfirmPaid(ctx, rentalID, time.Now())
	if err != nil {
		return err
	}
	if applied {
		s.Logger.Info("rental confirmed", zap.Uint("rentalID", rentalID))
		return nil
	}
	return s.explainLostTransition(ctx, rentalID, models.RentalStatusConfirmed)
}

func (s *DefaultBookingService) FailPayment(ctx context.Context, rentalID uint) error {
	applied, err := s.Rentals.FailPending(ctx, rentalID)
	if err != nil {
		return err
	}
	if applied {
		s.Logger.Info("rental failed on payment outcome", zap.Uint("rentalID", rentalID))
		return nil
	}
	return s.explainLostTransition(ctx, rentalID, models.RentalStatusFailed)
}

func (s *DefaultBookingService) CompleteRental(ctx context.Context, rentalID uint) error {
	applied, err := s.Rentals.CompleteConfirmed(ctx, rentalID)
	if err != nil {
		return err
	}
	if applied {
		s.Logger.Info("rental completed", zap.Uint("rentalID", rentalID))
		return nil
	}
	return s.explainLostTransition(ctx, rentalID, models.RentalStatusCompleted)
}

func (s *DefaultBookingService) CancelBooking(ctx context.Context, rentalID, userID uint) error {
	rental, err := s.Rentals.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewError(CodeRentalNotFound, "rental not found")
		}
		return err
	}
	if rental.UserID != userID {
		return NewError(CodeRentalNotFound, "rental not found")
	}

	applied, err := s.Rentals.CancelPending(ctx, rentalID, ReasonCustomer, time.Now())
	if err != nil {
		return err
	}
	if applied {
		s.Logger.Info("rental cancelled by customer", zap.Uint("rentalID", rentalID))
		return nil
	}
	return s.explainLostTransition(ctx, rentalID, models.RentalStatusCancelled)
}

// explainLostTransition turns a no-op conditional write into either silence
// (the transition already happened, replay is fine) or a coded error that
// tells the caller why the rental can no longer move.
func (s *DefaultBookingService) explainLostTransition(ctx context.Context, rentalID uint, wanted models.RentalStatus) error {
	rental, err := s.Rentals.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewError(CodeRentalNotFound, "rental not found")
		}
		return err
	}
	if rental.Status == wanted {
		// Already applied by a concurrent writer; replaying is a no-op.
		return nil
	}
	if rental.Status == models.RentalStatusCancelled {
		return CancelledError(rental)
	}
	return NewError(CodeIllegalTransition,
		"rental is "+string(rental.Status)+" and cannot become "+string(wanted))
}

// CancelledError reports which auto-cancel path claimed the rental,
// inferred from the signed milestone at cancellation time.
func CancelledError(r *models.Rental) error {
	if r.SignedAt == nil {
		return NewError(CodeRentalCancelledUnsigned,
			"reservation expired because the contract was not signed in time; please rebook")
	}
	return NewError(CodeRentalCancelledUnpaid,
		"reservation expired because payment was not completed in time; please rebook")
}

// AutoCancelStale runs one auto-cancel sweep. Candidates are re-matched
// against the staleness predicate at update time, so a rental that was
// signed, paid, or already cancelled between selection and update is left
// alone — and two overlapping sweeps cannot both claim the same row.
func (s *DefaultBookingService) AutoCancelStale(ctx context.Context, now time.Time) (int, error) {
	cancelled := 0

	unsignedCutoff := now.Add(-s.Deadlines.Signing)
	stale, err := s.Rentals.StaleUnsigned(ctx, unsignedCutoff)
	if err != nil {
		return cancelled, err
	}
	for _, r := range stale {
		applied, err := s.Rentals.CancelIfStillUnsigned(ctx, r.ID, unsignedCutoff, ReasonNotSigned, now)
		if err != nil {
			s.Logger.Error("auto-cancel (unsigned) failed",
				zap.Uint("rentalID", r.ID), zap.Error(err))
			continue
		}
		if applied {
			cancelled++
			s.Logger.Info("rental auto-cancelled: never signed", zap.Uint("rentalID", r.ID))
		}
	}

	unpaidCutoff := now.Add(-s.Deadlines.Payment)
	stale, err = s.Rentals.StaleUnpaid(ctx, unpaidCutoff)
	if err != nil {
		return cancelled, err
	}
	for _, r := range stale {
		applied, err := s.Rentals.CancelIfStillUnpaid(ctx, r.ID, unpaidCutoff, ReasonNotPaid, now)
		if err != nil {
			s.Logger.Error("auto-cancel (unpaid) failed",
				zap.Uint("rentalID", r.ID), zap.Error(err))
			continue
		}
		if applied {
			cancelled++
			s.Logger.Info("rental auto-cancelled: never paid", zap.Uint("rentalID", r.ID))
		}
	}

	return cancelled, nil
}

// RestoreAvailability runs one availability-restore sweep: any CONFIRMED
// rental whose effective end (end date refined by return time-of-day) has
// passed is completed and its car freed, one transaction per car.
func (s *DefaultBookingService) RestoreAvailability(ctx context.Context, now time.Time) (int, error) {
	candidates, err := s.Rentals.ElapsedConfirmed(ctx, now)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, r := range candidates {
		if r.EffectiveEnd().After(now) {
			// Same-day rental whose return time has not passed yet.
			continue
		}
		applied, err := s.Rentals.CompleteConfirmed(ctx, r.ID)
		if err != nil {
			s.Logger.Error("availability restore failed",
				zap.Uint("rentalID", r.ID), zap.Error(err))
			continue
		}
		if applied {
			completed++
			s.Logger.Info("rental completed, car released",
				zap.Uint("rentalID", r.ID), zap.Uint("carID", r.CarID))
		}
	}
	return completed, nil
}
