package contract

import (
	"context"
	"time"

	"carrent/models"

	"gorm.io/gorm"
)

// Repository persists rental contracts and enforces single-use signing
// tokens at the row level: ConsumeToken only applies while the exact token
// is still stored and unexpired, and clears it in the same write.
type Repository interface {
	Create(ctx context.Context, c *models.RentalContract) error
	GetByID(ctx context.Context, id uint) (*models.RentalContract, error)
	GetByRentalID(ctx context.Context, rentalID uint) (*models.RentalContract, error)
	SetSigningToken(ctx context.Context, id uint, token string, expiry time.Time) error
	ConsumeToken(ctx context.Context, id uint, token, signerName, signerEmail string, at time.Time) (bool, error)
	MarkVerified(ctx context.Context, id uint) (bool, error)
}

type mysqlRepo struct {
	db *gorm.DB
}

func NewMySQLContractRepo(db *gorm.DB) Repository {
	return &mysqlRepo{db: db}
}

func (r *mysqlRepo) Create(ctx context.Context, c *models.RentalContract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *mysqlRepo) GetByID(ctx context.Context, id uint) (*models.RentalContract, error) {
	var c models.RentalContract
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mysqlRepo) GetByRentalID(ctx context.Context, rentalID uint) (*models.RentalContract, error) {
	var c models.RentalContract
	if err := r.db.WithContext(ctx).Where("rental_id = ?", rentalID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mysqlRepo) SetSigningToken(ctx context.Context, id uint, token string, expiry time.Time) error {
	return r.db.WithContext(ctx).Model(&models.RentalContract{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"signing_token":        token,
			"signing_token_expiry": expiry,
		}).Error
}

func (r *mysqlRepo) ConsumeToken(ctx context.Context, id uint, token, signerName, signerEmail string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.RentalContract{}).
		Where("id = ? AND signing_token = ? AND signing_token_expiry > ?", id, token, at).
		Updates(map[string]interface{}{
			"is_signed":            true,
			"agreement_accepted":   true,
			"signed_at":            at,
			"signer_name":          signerName,
			"signer_email":         signerEmail,
			"signing_token":        nil,
			"signing_token_expiry": nil,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *mysqlRepo) MarkVerified(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.RentalContract{}).
		Where("id = ? AND verified = ?", id, false).
		Update("verified", true)
	return res.RowsAffected > 0, res.Error
}
