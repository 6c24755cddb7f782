package models

import (
	"time"

	"gorm.io/gorm"
)

type Car struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Brand        string         `json:"brand" gorm:"size:64;index"`
	Model        string         `json:"model" gorm:"size:64"`
	Plate        string         `json:"plate" gorm:"size:16;uniqueIndex"`
	Seater       int32          `json:"seater"`
	Transmission string         `json:"transmission" gorm:"size:16"`
	PricePerDay  float64        `json:"pricePerDay" gorm:"type:decimal(10,2)"`
	Available    bool           `json:"available" gorm:"default:true"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
