package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	paymentRepo "carrent/database/repository/payment"
	rentalRepo "carrent/database/repository/rental"
	"carrent/models"

	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultPaymentService reconciles gateway outcomes with rental state. Both
// the synchronous verification path and the webhook path funnel into the
// same conditional transitions, so whichever arrives second is a no-op.
type DefaultPaymentService struct {
	Payments      paymentRepo.Repository
	Rentals       rentalRepo.Repository
	Lifecycle     BookingService
	Gateway       Gateway
	WebhookSecret string
	// DedupCache is best-effort webhook dedup; nil disables it.
	DedupCache *redis.Client
	Logger     *zap.Logger
}

func (s *DefaultPaymentService) InitiateCheckout(ctx context.Context, rentalID, customerID uint, amount float64) (*CheckoutSession, error) {
	rental, err := s.Rentals.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(CodeRentalNotFound, "rental not found")
		}
		return nil, err
	}
	if rental.UserID != customerID {
		return nil, NewError(CodeRentalNotFound, "rental not found")
	}
	if rental.Status == models.RentalStatusCancelled {
		return nil, CancelledError(rental)
	}
	if rental.Status != models.RentalStatusPending {
		return nil, NewError(CodeIllegalTransition,
			"rental is "+string(rental.Status)+" and cannot be paid for")
	}
	if amount <= 0 {
		return nil, NewError(CodeInvalidWindow, "payment amount must be positive")
	}

	session, err := s.Gateway.CreateCheckoutSession(ctx, amount, map[string]string{
		"rentalId":   strconv.FormatUint(uint64(rentalID), 10),
		"customerId": strconv.FormatUint(uint64(customerID), 10),
	})
	if err != nil {
		return nil, NewError(CodeGateway, fmt.Sprintf("checkout session creation failed: %v", err))
	}

	if _, err := s.Payments.UpsertCheckout(ctx, rentalID, "card", amount, session.SessionID); err != nil {
		return nil, err
	}

	s.Logger.Info("checkout initiated",
		zap.Uint("rentalID", rentalID), zap.String("sessionID", session.SessionID))
	return session, nil
}

func (s *DefaultPaymentService) VerifySession(ctx context.Context, sessionID string, rentalID uint) (bool, error) {
	// The session must be the one recorded at checkout for this rental;
	// otherwise an unrelated session's outcome could finalize it.
	payment, err := s.Payments.GetByRentalID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, NewError(CodeSessionMismatch, "no checkout session exists for this rental")
		}
		return false, err
	}
	if payment.SessionID != sessionID {
		return false, NewError(CodeSessionMismatch, "session does not belong to this rental")
	}

	status, err := s.Gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return false, NewError(CodeGateway, fmt.Sprintf("session retrieval failed: %v", err))
	}
	if status.Paid {
		return true, s.applyOutcome(ctx, rentalID, true, status.PaymentIntentID)
	}
	return false, s.applyOutcome(ctx, rentalID, false, status.PaymentIntentID)
}

// applyOutcome applies a terminal gateway outcome exactly once. Payment and
// rental rows are each guarded by their own conditional update, so a replay
// — webhook after verification or the other way round — changes nothing.
func (s *DefaultPaymentService) applyOutcome(ctx context.Context, rentalID uint, paid bool, intentID string) error {
	if paid {
		now := time.Now()
		if _, err := s.Payments.MarkOutcome(ctx, rentalID, models.PaymentStatusSuccess, intentID, &now); err != nil {
			return err
		}
		return s.Lifecycle.ConfirmPayment(ctx, rentalID)
	}

	if _, err := s.Payments.MarkOutcome(ctx, rentalID, models.PaymentStatusFailed, intentID, nil); err != nil {
		return err
	}
	return s.Lifecycle.FailPayment(ctx, rentalID)
}

func (s *DefaultPaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.WebhookSecret)
	if err != nil {
		return NewError(CodeGateway, fmt.Sprintf("webhook signature verification failed: %v", err))
	}

	if !s.claimEvent(ctx, event.ID) {
		s.Logger.Debug("duplicate webhook event skipped", zap.String("eventID", event.ID))
		return nil
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return fmt.Errorf("bad payment_intent payload: %w", err)
		}
		rentalID, err := rentalIDFromMetadata(intent.Metadata)
		if err != nil {
			return err
		}
		return s.applyOutcome(ctx, rentalID, true, intent.ID)

	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return fmt.Errorf("bad checkout.session payload: %w", err)
		}
		rentalID, err := rentalIDFromMetadata(session.Metadata)
		if err != nil {
			return err
		}
		paid := session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid
		intentID := ""
		if session.PaymentIntent != nil {
			intentID = session.PaymentIntent.ID
		}
		return s.applyOutcome(ctx, rentalID, paid, intentID)

	default:
		// Unsubscribed event types are acknowledged and dropped.
		return nil
	}
}

// claimEvent marks the webhook event as seen. With no cache configured every
// event is treated as fresh; the conditional DB updates still make replays
// harmless.
func (s *DefaultPaymentService) claimEvent(ctx context.Context, eventID string) bool {
	if s.DedupCache == nil || eventID == "" {
		return true
	}
	ok, err := s.DedupCache.SetNX(ctx, "stripe:event:"+eventID, 1, 24*time.Hour).Result()
	if err != nil {
		s.Logger.Warn("webhook dedup cache unavailable", zap.Error(err))
		return true
	}
	return ok
}

func rentalIDFromMetadata(md map[string]string) (uint, error) {
	raw, ok := md["rentalId"]
	if !ok {
		return 0, errors.New("webhook event missing rentalId metadata")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("webhook event has malformed rentalId %q", raw)
	}
	return uint(id), nil
}
