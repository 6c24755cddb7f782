package rental

import (
	"context"
	"errors"
	"time"

	"carrent/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type mysqlRepo struct {
	db *gorm.DB
}

// NewMySQLRentalRepo returns a Repository backed by the given gorm handle.
func NewMySQLRentalRepo(db *gorm.DB) Repository {
	return &mysqlRepo{db: db}
}

var activeStatuses = []models.RentalStatus{models.RentalStatusPending, models.RentalStatusConfirmed}

func (r *mysqlRepo) CreateBooking(ctx context.Context, rental *models.Rental) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the car row so two concurrent bookings for the same car
		// serialize here instead of both passing the conflict check.
		var car models.Car
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&car, rental.CarID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCarNotFound
			}
			return err
		}
		if !car.Available {
			return ErrCarUnavailable
		}

		var conflicts int64
		err := tx.Model(&models.Rental{}).
			Where("car_id = ? AND status IN ? AND start_date < ? AND end_date > ?",
				rental.CarID, activeStatuses, rental.EndDate, rental.StartDate).
			Count(&conflicts).Error
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrCarUnavailable
		}

		rental.Status = models.RentalStatusPending
		return tx.Create(rental).Error
	})
}

func (r *mysqlRepo) GetByID(ctx context.Context, id uint) (*models.Rental, error) {
	var rental models.Rental
	if err := r.db.WithContext(ctx).First(&rental, id).Error; err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *mysqlRepo) ListByUser(ctx context.Context, userID uint) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rentals).Error
	return rentals, err
}

func (r *mysqlRepo) MarkSigned(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Rental{}).
		Where("id = ? AND status = ? AND signed_at IS NULL", id, models.RentalStatusPending).
		Update("signed_at", at)
	return res.RowsAffected > 0, res.Error
}

func (r *mysqlRepo) ConfirmPaid(ctx context.Context, id uint, at time.Time) (bool, error) {
	var applied bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Rental{}).
			Where("id = ? AND status = ?", id, models.RentalStatusPending).
			Updates(map[string]interface{}{
				"status":  models.RentalStatusConfirmed,
				"paid_at": at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		applied = true

		var rental models.Rental
		if err := tx.First(&rental, id).Error; err != nil {
			return err
		}
		return tx.Model(&models.Car{}).
			Where("id = ?", rental.CarID).
			Update("available", false).Error
	})
	return applied, err
}

func (r *mysqlRepo) FailPending(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Rental{}).
		Where("id = ? AND status = ?", id, models.RentalStatusPending).
		Update("status", models.RentalStatusFailed)
	return res.RowsAffected > 0, res.Error
}

func (r *mysqlRepo) CancelPending(ctx context.Context, id uint, reason string, at time.Time) (bool, error) {
	return r.cancelWhere(ctx, id, reason, at,
		"id = ? AND status = ?", id, models.RentalStatusPending)
}

func (r *mysqlRepo) CancelIfStillUnsigned(ctx context.Context, id uint, cutoff time.Time, reason string, at time.Time) (bool, error) {
	return r.cancelWhere(ctx, id, reason, at,
		"id = ? AND status = ? AND signed_at IS NULL AND created_at < ?",
		id, models.RentalStatusPending, cutoff)
}

func (r *mysqlRepo) CancelIfStillUnpaid(ctx context.Context, id uint, cutoff time.Time, reason string, at time.Time) (bool, error) {
	return r.cancelWhere(ctx, id, reason, at,
		"id = ? AND status = ? AND signed_at IS NOT NULL AND paid_at IS NULL AND signed_at < ?",
		id, models.RentalStatusPending, cutoff)
}

// cancelWhere applies the CANCELLED transition guarded by the given
// predicate and re-marks the car available in the same transaction. The
// flip is skipped while any CONFIRMED rental holds the car, since that
// rental owns the availability flag until it completes.
func (r *mysqlRepo) cancelWhere(ctx context.Context, id uint, reason string, at time.Time, query string, args ...interface{}) (bool, error) {
	var applied bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Rental{}).
			Where(query, args...).
			Updates(map[string]interface{}{
				"status":              models.RentalStatusCancelled,
				"cancelled_at":        at,
				"cancellation_reason": reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		applied = true

		var rental models.Rental
		if err := tx.First(&rental, id).Error; err != nil {
			return err
		}

		var holders int64
		err := tx.Model(&models.Rental{}).
			Where("car_id = ? AND status = ?", rental.CarID, models.RentalStatusConfirmed).
			Count(&holders).Error
		if err != nil {
			return err
		}
		if holders > 0 {
			return nil
		}
		return tx.Model(&models.Car{}).
			Where("id = ?", rental.CarID).
			Update("available", true).Error
	})
	return applied, err
}

func (r *mysqlRepo) CompleteConfirmed(ctx context.Context, id uint) (bool, error) {
	var applied bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Rental{}).
			Where("id = ? AND status = ?", id, models.RentalStatusConfirmed).
			Update("status", models.RentalStatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		applied = true

		var rental models.Rental
		if err := tx.First(&rental, id).Error; err != nil {
			return err
		}
		return tx.Model(&models.Car{}).
			Where("id = ?", rental.CarID).
			Update("available", true).Error
	})
	return applied, err
}

func (r *mysqlRepo) StaleUnsigned(ctx context.Context, cutoff time.Time) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.WithContext(ctx).
		Where("status = ? AND signed_at IS NULL AND created_at < ?",
			models.RentalStatusPending, cutoff).
		Find(&rentals).Error
	return rentals, err
}

func (r *mysqlRepo) StaleUnpaid(ctx context.Context, cutoff time.Time) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.WithContext(ctx).
		Where("status = ? AND signed_at IS NOT NULL AND paid_at IS NULL AND signed_at < ?",
			models.RentalStatusPending, cutoff).
		Find(&rentals).Error
	return rentals, err
}

func (r *mysqlRepo) ElapsedConfirmed(ctx context.Context, now time.Time) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.WithContext(ctx).Model(&models.Rental{}).
		Joins("JOIN cars ON cars.id = rentals.car_id").
		Where("rentals.status = ? AND cars.available = ? AND rentals.end_date <= ?",
			models.RentalStatusConfirmed, false, now).
		Find(&rentals).Error
	return rentals, err
}
