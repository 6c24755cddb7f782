package booking

import (
	"context"
	"time"

	carRepo "carrent/database/repository/car"
	contractRepo "carrent/database/repository/contract"
	paymentRepo "carrent/database/repository/payment"
	rentalRepo "carrent/database/repository/rental"
	userRepo "carrent/database/repository/user"
	"carrent/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testLogger() *zap.Logger { return zap.NewNop() }

// --- rental repository mock ---

type rentalRepoMock struct {
	createBookingFn         func(ctx context.Context, r *models.Rental) error
	getByIDFn               func(ctx context.Context, id uint) (*models.Rental, error)
	listByUserFn            func(ctx context.Context, userID uint) ([]models.Rental, error)
	markSignedFn            func(ctx context.Context, id uint, at time.Time) (bool, error)
	confirmPaidFn           func(ctx context.Context, id uint, at time.Time) (bool, error)
	failPendingFn           func(ctx context.Context, id uint) (bool, error)
	cancelPendingFn         func(ctx context.Context, id uint, reason string, at time.Time) (bool, error)
	cancelIfStillUnsignedFn func(ctx context.Context, id uint, cutoff time.Time, reason string, at time.Time) (bool, error)
	cancelIfStillUnpaidFn   func(ctx context.Context, id uint, cutoff time.Time, reason string, at time.Time) (bool, error)
	completeConfirmedFn     func(ctx context.Context, id uint) (bool, error)
	staleUnsignedFn         func(ctx context.Context, cutoff time.Time) ([]models.Rental, error)
	staleUnpaidFn           func(ctx context.Context, cutoff time.Time) ([]models.Rental, error)
	elapsedConfirmedFn      func(ctx context.Context, now time.Time) ([]models.Rental, error)
}

var _ rentalRepo.Repository = (*rentalRepoMock)(nil)

func (m *rentalRepoMock) CreateBooking(ctx context.Context, r *models.Rental) error {
	if m.createBookingFn == nil {
		r.ID = 1
		return nil
	}
	return m.createBookingFn(ctx, r)
}

func (m *rentalRepoMock) GetByID(ctx context.Context, id uint) (*models.Rental, error) {
	if m.getByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.getByIDFn(ctx, id)
}

func (m *rentalRepoMock) ListByUser(ctx context.Context, userID uint) ([]models.Rental, error) {
	if m.listByUserFn == nil {
		return nil, nil
	}
	return m.listByUserFn(ctx, userID)
}

func (m *rentalRepoMock) MarkSigned(ctx context.Context, id uint, at time.Time) (bool, error) {
	if m.markSignedFn == nil {
		return true, nil
	}
	return m.markSignedFn(ctx, id, at)
}

func (m *rentalRepoMock) ConfirmPaid(ctx context.Context, id uint, at time.Time) (bool, error) {
	if m.confirmPaidFn == nil {
		return true, nil
	}
	return m.confirmPaidFn(ctx, id, at)
}

func (m *rentalRepoMock) FailPending(ctx context.Context, id uint) (bool, error) {
	if m.failPendingFn == nil {
		return true, nil
	}
	return m.failPendingFn(ctx, id)
}

func (m *rentalRepoMock) CancelPending(ctx context.Context, id uint, reason string, at time.Time) (bool, error) {
	if m.cancelPendingFn == nil {
		return true, nil
	}
	return m.cancelPendingFn(ctx, id, reason, at)
}

func (m *rentalRepoMock) CancelIfStillUnsigned(ctx context.Context, id uint, cutoff time.Time, reason string, at time.Time) (bool, error) {
	if m.cancelIfStillUnsignedFn == nil {
		return true, nil
	}
	return m.cancelIfStillUnsignedFn(ctx, id, cutoff, reason, at)
}

func (m *rentalRepoMock) CancelIfStillUnpaid(ctx context.Context, id uint, cutoff time.Time, reason string, at time.Time) (bool, error) {
	if m.cancelIfStillUnpaidFn == nil {
		return true, nil
	}
	return m.cancelIfStillUnpaidFn(ctx, id, cutoff, reason, at)
}

func (m *rentalRepoMock) CompleteConfirmed(ctx context.Context, id uint) (bool, error) {
	if m.completeConfirmedFn == nil {
		return true, nil
	}
	return m.completeConfirmedFn(ctx, id)
}

func (m *rentalRepoMock) StaleUnsigned(ctx context.Context, cutoff time.Time) ([]models.Rental, error) {
	if m.staleUnsignedFn == nil {
		return nil, nil
	}
	return m.staleUnsignedFn(ctx, cutoff)
}

func (m *rentalRepoMock) StaleUnpaid(ctx context.Context, cutoff time.Time) ([]models.Rental, error) {
	if m.staleUnpaidFn == nil {
		return nil, nil
	}
	return m.staleUnpaidFn(ctx, cutoff)
}

func (m *rentalRepoMock) ElapsedConfirmed(ctx context.Context, now time.Time) ([]models.Rental, error) {
	if m.elapsedConfirmedFn == nil {
		return nil, nil
	}
	return m.elapsedConfirmedFn(ctx, now)
}

// --- car repository mock ---

type carRepoMock struct {
	getByIDFn      func(ctx context.Context, id uint) (*models.Car, error)
	listFn         func(ctx context.Context) ([]models.Car, error)
	setAvailableFn func(ctx context.Context, id uint, available bool) error
}

var _ carRepo.Repository = (*carRepoMock)(nil)

func (m *carRepoMock) GetByID(ctx context.Context, id uint) (*models.Car, error) {
	if m.getByIDFn == nil {
		return &models.Car{ID: id, Available: true}, nil
	}
	return m.getByIDFn(ctx, id)
}

func (m *carRepoMock) List(ctx context.Context) ([]models.Car, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}

func (m *carRepoMock) SetAvailable(ctx context.Context, id uint, available bool) error {
	if m.setAvailableFn == nil {
		return nil
	}
	return m.setAvailableFn(ctx, id, available)
}

// --- user repository mock ---

type userRepoMock struct {
	getByIDFn func(ctx context.Context, id uint) (*models.User, error)
}

var _ userRepo.Repository = (*userRepoMock)(nil)

func (m *userRepoMock) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if m.getByIDFn == nil {
		return &models.User{ID: id, Name: "Test User", Email: "test@example.com",
			DocumentsUploaded: true, DocumentsVerified: true}, nil
	}
	return m.getByIDFn(ctx, id)
}

// --- contract repository mock ---

type contractRepoMock struct {
	createFn          func(ctx context.Context, c *models.RentalContract) error
	getByIDFn         func(ctx context.Context, id uint) (*models.RentalContract, error)
	getByRentalIDFn   func(ctx context.Context, rentalID uint) (*models.RentalContract, error)
	setSigningTokenFn func(ctx context.Context, id uint, token string, expiry time.Time) error
	consumeTokenFn    func(ctx context.Context, id uint, token, signerName, signerEmail string, at time.Time) (bool, error)
	markVerifiedFn    func(ctx context.Context, id uint) (bool, error)
}

var _ contractRepo.Repository = (*contractRepoMock)(nil)

func (m *contractRepoMock) Create(ctx context.Context, c *models.RentalContract) error {
	if m.createFn == nil {
		c.ID = 1
		return nil
	}
	return m.createFn(ctx, c)
}

func (m *contractRepoMock) GetByID(ctx context.Context, id uint) (*models.RentalContract, error) {
	if m.getByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.getByIDFn(ctx, id)
}

func (m *contractRepoMock) GetByRentalID(ctx context.Context, rentalID uint) (*models.RentalContract, error) {
	if m.getByRentalIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.getByRentalIDFn(ctx, rentalID)
}

func (m *contractRepoMock) SetSigningToken(ctx context.Context, id uint, token string, expiry time.Time) error {
	if m.setSigningTokenFn == nil {
		return nil
	}
	return m.setSigningTokenFn(ctx, id, token, expiry)
}

func (m *contractRepoMock) ConsumeToken(ctx context.Context, id uint, token, signerName, signerEmail string, at time.Time) (bool, error) {
	if m.consumeTokenFn == nil {
		return true, nil
	}
	return m.consumeTokenFn(ctx, id, token, signerName, signerEmail, at)
}

func (m *contractRepoMock) MarkVerified(ctx context.Context, id uint) (bool, error) {
	if m.markVerifiedFn == nil {
		return true, nil
	}
	return m.markVerifiedFn(ctx, id)
}

// --- payment repository mock ---

type paymentRepoMock struct {
	upsertCheckoutFn func(ctx context.Context, rentalID uint, method string, amount float64, sessionID string) (*models.Payment, error)
	getByRentalIDFn  func(ctx context.Context, rentalID uint) (*models.Payment, error)
	markOutcomeFn    func(ctx context.Context, rentalID uint, status models.PaymentStatus, intentID string, paidAt *time.Time) (bool, error)
}

var _ paymentRepo.Repository = (*paymentRepoMock)(nil)

func (m *paymentRepoMock) UpsertCheckout(ctx context.Context, rentalID uint, method string, amount float64, sessionID string) (*models.Payment, error) {
	if m.upsertCheckoutFn == nil {
		return &models.Payment{RentalID: rentalID, Amount: amount, Status: models.PaymentStatusPending, SessionID: sessionID}, nil
	}
	return m.upsertCheckoutFn(ctx, rentalID, method, amount, sessionID)
}

func (m *paymentRepoMock) GetByRentalID(ctx context.Context, rentalID uint) (*models.Payment, error) {
	if m.getByRentalIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.getByRentalIDFn(ctx, rentalID)
}

func (m *paymentRepoMock) MarkOutcome(ctx context.Context, rentalID uint, status models.PaymentStatus, intentID string, paidAt *time.Time) (bool, error) {
	if m.markOutcomeFn == nil {
		return true, nil
	}
	return m.markOutcomeFn(ctx, rentalID, status, intentID, paidAt)
}

// --- renderer mock ---

type rendererMock struct {
	renderFn func(ctx context.Context, rental *models.Rental, user *models.User, car *models.Car) (string, error)
}

func (m *rendererMock) Render(ctx context.Context, rental *models.Rental, user *models.User, car *models.Car) (string, error) {
	if m.renderFn == nil {
		return "https://cdn.example.com/contracts/agreement.txt", nil
	}
	return m.renderFn(ctx, rental, user, car)
}

// --- notifier mock ---

type notifierMock struct {
	sendFn func(ctx context.Context, user *models.User, contractURL, signingLink string) error
	sent   []string
}

func (m *notifierMock) SendSigningLink(ctx context.Context, user *models.User, contractURL, signingLink string) error {
	m.sent = append(m.sent, signingLink)
	if m.sendFn == nil {
		return nil
	}
	return m.sendFn(ctx, user, contractURL, signingLink)
}

// --- gateway mock ---

type gatewayMock struct {
	createFn   func(ctx context.Context, amount float64, metadata map[string]string) (*CheckoutSession, error)
	retrieveFn func(ctx context.Context, sessionID string) (*SessionStatus, error)
}

var _ Gateway = (*gatewayMock)(nil)

func (m *gatewayMock) CreateCheckoutSession(ctx context.Context, amount float64, metadata map[string]string) (*CheckoutSession, error) {
	if m.createFn == nil {
		return &CheckoutSession{URL: "https://pay.example.com/cs_test", SessionID: "cs_test"}, nil
	}
	return m.createFn(ctx, amount, metadata)
}

func (m *gatewayMock) RetrieveSession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	if m.retrieveFn == nil {
		return &SessionStatus{Paid: true, PaymentIntentID: "pi_test"}, nil
	}
	return m.retrieveFn(ctx, sessionID)
}

// --- lifecycle mock (for the payment service) ---

type lifecycleMock struct {
	confirmFn   func(ctx context.Context, rentalID uint) error
	failFn      func(ctx context.Context, rentalID uint) error
	confirmed   []uint
	failed      []uint
}

var _ BookingService = (*lifecycleMock)(nil)

func (m *lifecycleMock) CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	return nil, nil
}
func (m *lifecycleMock) GetRental(ctx context.Context, id uint) (*models.Rental, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *lifecycleMock) ListUserRentals(ctx context.Context, userID uint) ([]models.Rental, error) {
	return nil, nil
}
func (m *lifecycleMock) ConfirmPayment(ctx context.Context, rentalID uint) error {
	m.confirmed = append(m.confirmed, rentalID)
	if m.confirmFn == nil {
		return nil
	}
	return m.confirmFn(ctx, rentalID)
}
func (m *lifecycleMock) FailPayment(ctx context.Context, rentalID uint) error {
	m.failed = append(m.failed, rentalID)
	if m.failFn == nil {
		return nil
	}
	return m.failFn(ctx, rentalID)
}
func (m *lifecycleMock) CompleteRental(ctx context.Context, rentalID uint) error { return nil }
func (m *lifecycleMock) CancelBooking(ctx context.Context, rentalID, userID uint) error {
	return nil
}
func (m *lifecycleMock) AutoCancelStale(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}
func (m *lifecycleMock) RestoreAvailability(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}
