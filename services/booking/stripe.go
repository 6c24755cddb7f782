package booking

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeGateway implements Gateway over Stripe Checkout Sessions. The
// package-level stripe.Key is set once at startup.
type StripeGateway struct {
	SuccessURL string
	CancelURL  string
	Currency   string
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, amount float64, metadata map[string]string) (*CheckoutSession, error) {
	currency := g.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Car rental"),
					},
					UnitAmount: stripe.Int64(int64(math.Round(amount * 100))),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.SuccessURL),
		CancelURL:  stripe.String(g.CancelURL),
		Metadata:   metadata,
	}
	params.Context = ctx
	// Carry the rental reference onto the payment intent so the webhook can
	// reconcile without a session lookup.
	params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
		Metadata: metadata,
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}
	return &CheckoutSession{URL: sess.URL, SessionID: sess.ID}, nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: retrieve checkout session: %w", err)
	}

	intentID := ""
	if sess.PaymentIntent != nil {
		intentID = sess.PaymentIntent.ID
	}
	return &SessionStatus{
		Paid:            sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		PaymentIntentID: intentID,
	}, nil
}
