package car

import (
	"context"

	"carrent/models"

	"gorm.io/gorm"
)

// Repository reads and administers the car fleet. Availability flips that
// belong to a rental transition happen inside the rental repository's
// transactions, not here.
type Repository interface {
	GetByID(ctx context.Context, id uint) (*models.Car, error)
	List(ctx context.Context) ([]models.Car, error)
	SetAvailable(ctx context.Context, id uint, available bool) error
}

type mysqlRepo struct {
	db *gorm.DB
}

func NewMySQLCarRepo(db *gorm.DB) Repository {
	return &mysqlRepo{db: db}
}

func (r *mysqlRepo) GetByID(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *mysqlRepo) List(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	err := r.db.WithContext(ctx).Order("brand, model").Find(&cars).Error
	return cars, err
}

func (r *mysqlRepo) SetAvailable(ctx context.Context, id uint, available bool) error {
	return r.db.WithContext(ctx).Model(&models.Car{}).
		Where("id = ?", id).
		Update("available", available).Error
}
