package models

import "time"

// PaymentStatus transitions PENDING -> {SUCCESS, FAILED} and is never reversed.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type Payment struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	RentalID        uint          `json:"rentalId" gorm:"uniqueIndex;not null"`
	Method          string        `json:"method" gorm:"size:32"`
	Amount          float64       `json:"amount" gorm:"type:decimal(10,2)"`
	Status          PaymentStatus `json:"status" gorm:"type:varchar(16);default:'PENDING'"`
	SessionID       string        `json:"sessionId" gorm:"size:128;index"`
	PaymentIntentID string        `json:"paymentIntentId" gorm:"size:128"`
	PaidAt          *time.Time    `json:"paidAt,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
