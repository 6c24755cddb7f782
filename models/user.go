package models

import "time"

// User carries the slice of the identity record the rental engine reads:
// whether the customer's documents have been uploaded and verified by staff,
// and where to reach them. Credential handling lives elsewhere.
type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"size:128"`
	Email             string    `json:"email" gorm:"size:128;uniqueIndex"`
	Role              string    `json:"role" gorm:"size:16;default:'customer'"`
	FCMToken          string    `json:"-" gorm:"size:256"`
	DocumentsUploaded bool      `json:"documentsUploaded"`
	DocumentsVerified bool      `json:"documentsVerified"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
