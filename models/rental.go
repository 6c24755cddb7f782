package models

import "time"

// RentalStatus is the top-level lifecycle state of a rental.
type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "PENDING"
	RentalStatusConfirmed RentalStatus = "CONFIRMED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
	RentalStatusFailed    RentalStatus = "FAILED"
	RentalStatusCompleted RentalStatus = "COMPLETED"
)

// CanTransitionTo reports whether the state machine allows moving from s to next.
// PENDING -> {CONFIRMED, CANCELLED, FAILED}; CONFIRMED -> COMPLETED.
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	switch s {
	case RentalStatusPending:
		return next == RentalStatusConfirmed || next == RentalStatusCancelled || next == RentalStatusFailed
	case RentalStatusConfirmed:
		return next == RentalStatusCompleted
	default:
		return false
	}
}

// Terminal reports whether no further automatic transition may leave s,
// other than the CONFIRMED -> COMPLETED hand-off.
func (s RentalStatus) Terminal() bool {
	switch s {
	case RentalStatusCancelled, RentalStatusFailed, RentalStatusCompleted:
		return true
	default:
		return false
	}
}

type Rental struct {
	ID                 uint         `json:"id" gorm:"primaryKey"`
	CarID              uint         `json:"carId" gorm:"index;not null"`
	UserID             uint         `json:"userId" gorm:"index;not null"`
	Status             RentalStatus `json:"status" gorm:"type:varchar(16);index;default:'PENDING'"`
	StartDate          time.Time    `json:"startDate" gorm:"not null"`
	EndDate            time.Time    `json:"endDate" gorm:"not null"`
	PickupTime         string       `json:"pickupTime" gorm:"size:5"`
	ReturnTime         string       `json:"returnTime" gorm:"size:5"`
	TotalCost          float64      `json:"totalCost" gorm:"type:decimal(10,2)"`
	SignedAt           *time.Time   `json:"signedAt,omitempty"`
	PaidAt             *time.Time   `json:"paidAt,omitempty"`
	CancelledAt        *time.Time   `json:"cancelledAt,omitempty"`
	CancellationReason string       `json:"cancellationReason,omitempty" gorm:"size:255"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// EffectiveEnd refines EndDate with the return time-of-day. A malformed or
// empty ReturnTime falls back to EndDate as stored.
func (r *Rental) EffectiveEnd() time.Time {
	t, err := time.Parse("15:04", r.ReturnTime)
	if err != nil {
		return r.EndDate
	}
	return time.Date(r.EndDate.Year(), r.EndDate.Month(), r.EndDate.Day(),
		t.Hour(), t.Minute(), 0, 0, r.EndDate.Location())
}

// Overlaps reports strict half-open interval overlap with [start, end).
func (r *Rental) Overlaps(start, end time.Time) bool {
	return r.StartDate.Before(end) && r.EndDate.After(start)
}
