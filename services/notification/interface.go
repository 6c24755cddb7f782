package notification

import (
	"context"
	"fmt"

	"carrent/models"
	"carrent/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService delivers the contract URL and signing link to a
// customer out-of-band.
type NotificationService interface {
	SendSigningLink(ctx context.Context, user *models.User, contractURL, signingLink string) error
}

// FCMNotificationService is the production implementation: it pushes the
// signing link to the customer's registered device.
type FCMNotificationService struct{}

func (s *FCMNotificationService) SendSigningLink(ctx context.Context, user *models.User, contractURL, signingLink string) error {
	if user.FCMToken == "" {
		return fmt.Errorf("notification: user %d has no registered device token", user.ID)
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: "Your rental agreement is ready",
			Body:  "Review and sign your rental contract to keep your reservation.",
		},
		Data: map[string]string{
			"contractUrl": contractURL,
			"signingLink": signingLink,
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("notification: failed to send signing link: %w", err)
	}
	return nil
}

// LogNotificationService is the fallback used when FCM is not configured;
// it records the link instead of delivering it.
type LogNotificationService struct {
	Logger *zap.Logger
}

func (s *LogNotificationService) SendSigningLink(ctx context.Context, user *models.User, contractURL, signingLink string) error {
	s.Logger.Info("signing link (delivery not configured)",
		zap.Uint("userID", user.ID),
		zap.String("contractUrl", contractURL),
		zap.String("signingLink", signingLink))
	return nil
}
