package booking

import (
	"context"
	"time"

	"carrent/models"
)

// BookingRequest is a validated booking submission.
type BookingRequest struct {
	CarID      uint      `json:"carId" binding:"required"`
	UserID     uint      `json:"-"`
	PickupDate time.Time `json:"pickupDate" binding:"required"`
	ReturnDate time.Time `json:"returnDate" binding:"required"`
	PickupTime string    `json:"pickupTime"`
	ReturnTime string    `json:"returnTime"`
	TotalCost  float64   `json:"total" binding:"required"`
}

// BookingResult is what a successful booking returns to the caller.
type BookingResult struct {
	RentalID    uint   `json:"rentalId"`
	ContractURL string `json:"contractUrl"`
}

// BookingService owns rental creation and every status transition.
type BookingService interface {
	CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error)
	GetRental(ctx context.Context, id uint) (*models.Rental, error)
	ListUserRentals(ctx context.Context, userID uint) ([]models.Rental, error)

	// ConfirmPayment applies a successful gateway outcome: PENDING ->
	// CONFIRMED, paid_at set, car unavailable. Idempotent.
	ConfirmPayment(ctx context.Context, rentalID uint) error
	// FailPayment applies a failed gateway outcome: PENDING -> FAILED.
	FailPayment(ctx context.Context, rentalID uint) error
	// CompleteRental is the staff path for CONFIRMED -> COMPLETED.
	CompleteRental(ctx context.Context, rentalID uint) error
	// CancelBooking is the customer path for PENDING -> CANCELLED. Only the
	// rental's owner may cancel, and only while it is still PENDING.
	CancelBooking(ctx context.Context, rentalID, userID uint) error

	// AutoCancelStale expires PENDING rentals that missed the signing or
	// payment deadline. Returns how many rentals this sweep cancelled.
	AutoCancelStale(ctx context.Context, now time.Time) (int, error)
	// RestoreAvailability frees cars whose CONFIRMED rental has elapsed.
	// Returns how many rentals this sweep completed.
	RestoreAvailability(ctx context.Context, now time.Time) (int, error)
}

// SignatureSubmission carries one signature attempt against a contract.
type SignatureSubmission struct {
	UserID      uint
	RentalID    uint
	ContractID  uint
	Token       string
	SignerName  string
	SignerEmail string
}

// SigningService issues and consumes single-use signing tokens.
type SigningService interface {
	RequestSigning(ctx context.Context, userID, rentalID uint) error
	SubmitSignature(ctx context.Context, sub SignatureSubmission) error
}

// CheckoutSession is the redirect target returned by the payment gateway.
type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// SessionStatus is the terminal outcome of a gateway checkout session.
type SessionStatus struct {
	Paid            bool
	PaymentIntentID string
}

// Gateway is the minimal payment-gateway contract the engine reconciles
// against.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, amount float64, metadata map[string]string) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*SessionStatus, error)
}

// PaymentService initiates checkouts and reconciles gateway outcomes with
// rental state.
type PaymentService interface {
	InitiateCheckout(ctx context.Context, rentalID, customerID uint, amount float64) (*CheckoutSession, error)
	VerifySession(ctx context.Context, sessionID string, rentalID uint) (bool, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}
