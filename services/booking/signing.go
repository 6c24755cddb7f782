package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	contractRepo "carrent/database/repository/contract"
	rentalRepo "carrent/database/repository/rental"
	userRepo "carrent/database/repository/user"
	"carrent/models"
	"carrent/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultSigningService issues signing tokens and consumes them exactly once.
type DefaultSigningService struct {
	Rentals      rentalRepo.Repository
	Contracts    contractRepo.Repository
	Users        userRepo.Repository
	Notification notification.NotificationService
	FrontendURL  string
	TokenTTL     time.Duration
	Logger       *zap.Logger
}

func (s *DefaultSigningService) RequestSigning(ctx context.Context, userID, rentalID uint) error {
	usr, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewError(CodeUserNotFound, "user not found")
		}
		return err
	}

	rental, err := s.Rentals.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewError(CodeRentalNotFound, "rental not found")
		}
		return err
	}
	if rental.Status == models.RentalStatusCancelled {
		return CancelledError(rental)
	}

	contract, err := s.Contracts.GetByRentalID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewError(CodeContractNotFound, "no contract exists for this rental")
		}
		return err
	}

	now := time.Now()
	token := ""
	if contract.HasValidToken(now) {
		// Reuse the live token so previously sent signing links stay valid.
		token = *contract.SigningToken
	} else {
		token = uuid.New().String()
		expiry := now.Add(s.TokenTTL)
		if err := s.Contracts.SetSigningToken(ctx, contract.ID, token, expiry); err != nil {
			return err
		}
	}

	link := fmt.Sprintf("%s/contracts/sign?token=%s&rentalId=%d&userId=%d&contractId=%d",
		s.FrontendURL, token, rentalID, userID, contract.ID)

	if err := s.Notification.SendSigningLink(ctx, usr, contract.ContractURL, link); err != nil {
		s.Logger.Error("failed to dispatch signing link",
			zap.Uint("rentalID", rentalID), zap.Error(err))
		return fmt.Errorf("signing link could not be delivered: %w", err)
	}

	s.Logger.Info("signing link dispatched",
		zap.Uint("rentalID", rentalID), zap.Uint("userID", userID))
	return nil
}

func (s *DefaultSigningService) SubmitSignature(ctx context.Context, sub SignatureSubmission) error {
	rental, err := s.Rentals.GetByID(ctx, sub.RentalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewError(CodeRentalNotFound, "rental not found")
		}
		return err
	}
	if rental.Status == models.RentalStatusCancelled {
		return CancelledError(rental)
	}

	contract, err := s.Contracts.GetByID(ctx, sub.ContractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewError(CodeContractNotFound, "contract not found")
		}
		return err
	}
	if contract.RentalID != sub.RentalID {
		return NewError(CodeInvalidToken, "contract does not belong to this rental")
	}

	now := time.Now()
	if contract.SigningToken == nil || *contract.SigningToken != sub.Token {
		return NewError(CodeInvalidToken, "signing token does not match; request a new signing link")
	}
	if contract.SigningTokenExpiry == nil || !contract.SigningTokenExpiry.After(now) {
		return NewError(CodeTokenExpired, "signing link has expired; request a new one")
	}

	// The signer identity is whoever is authenticated now — link-based
	// signing means it need not be the original requester.
	applied, err := s.Contracts.ConsumeToken(ctx, contract.ID, sub.Token,
		sub.SignerName, sub.SignerEmail, now)
	if err != nil {
		return err
	}
	if !applied {
		// Consumed or rotated between our read and the conditional write.
		return NewError(CodeInvalidToken, "signing token is no longer valid; request a new signing link")
	}

	marked, err := s.Rentals.MarkSigned(ctx, sub.RentalID, now)
	if err != nil {
		return err
	}
	if !marked {
		// The sweep may have claimed the rental between the status read
		// above and this write; a late signature must not report success.
		latest, err := s.Rentals.GetByID(ctx, sub.RentalID)
		if err != nil {
			return err
		}
		if latest.Status == models.RentalStatusCancelled {
			return CancelledError(latest)
		}
		if latest.SignedAt == nil {
			return NewError(CodeIllegalTransition,
				"rental is "+string(latest.Status)+" and can no longer be signed")
		}
		// signed_at already set; replaying the milestone is a no-op.
	}

	s.Logger.Info("contract signed",
		zap.Uint("rentalID", sub.RentalID),
		zap.Uint("contractID", contract.ID),
		zap.String("signer", sub.SignerEmail))
	return nil
}
