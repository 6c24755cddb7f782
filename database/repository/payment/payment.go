package payment

import (
	"context"
	"errors"
	"time"

	"carrent/models"

	"gorm.io/gorm"
)

// Repository persists payment rows. A payment's status only ever moves
// PENDING -> {SUCCESS, FAILED}; MarkOutcome is a conditional write so
// replaying a gateway confirmation is a no-op.
type Repository interface {
	// UpsertCheckout creates the payment row for a rental, or refreshes the
	// gateway session on an existing still-PENDING row.
	UpsertCheckout(ctx context.Context, rentalID uint, method string, amount float64, sessionID string) (*models.Payment, error)
	GetByRentalID(ctx context.Context, rentalID uint) (*models.Payment, error)
	MarkOutcome(ctx context.Context, rentalID uint, status models.PaymentStatus, intentID string, paidAt *time.Time) (bool, error)
}

type mysqlRepo struct {
	db *gorm.DB
}

func NewMySQLPaymentRepo(db *gorm.DB) Repository {
	return &mysqlRepo{db: db}
}

func (r *mysqlRepo) UpsertCheckout(ctx context.Context, rentalID uint, method string, amount float64, sessionID string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("rental_id = ?", rentalID).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p = models.Payment{
				RentalID:  rentalID,
				Method:    method,
				Amount:    amount,
				Status:    models.PaymentStatusPending,
				SessionID: sessionID,
			}
			return tx.Create(&p).Error
		}
		if err != nil {
			return err
		}
		if p.Status != models.PaymentStatusPending {
			return nil
		}
		p.Method = method
		p.Amount = amount
		p.SessionID = sessionID
		return tx.Model(&p).Updates(map[string]interface{}{
			"method":     method,
			"amount":     amount,
			"session_id": sessionID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mysqlRepo) GetByRentalID(ctx context.Context, rentalID uint) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).Where("rental_id = ?", rentalID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mysqlRepo) MarkOutcome(ctx context.Context, rentalID uint, status models.PaymentStatus, intentID string, paidAt *time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("rental_id = ? AND status = ?", rentalID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":            status,
			"payment_intent_id": intentID,
			"paid_at":           paidAt,
		})
	return res.RowsAffected > 0, res.Error
}
