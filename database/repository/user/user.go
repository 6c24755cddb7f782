package user

import (
	"context"

	"carrent/models"

	"gorm.io/gorm"
)

// Repository is the engine's read surface over identity records.
type Repository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type mysqlRepo struct {
	db *gorm.DB
}

func NewMySQLUserRepo(db *gorm.DB) Repository {
	return &mysqlRepo{db: db}
}

func (r *mysqlRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
