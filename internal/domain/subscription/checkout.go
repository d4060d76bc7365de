package subscription

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
)

// CheckoutConfig carries the Stripe keys. When SecretKey is empty the
// online payment path is disabled and only manual recording is offered.
type CheckoutConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
}

// Checkout is the online alternative to the manual payment flow: a
// Stripe checkout session whose completion webhook records the payment
// order and activates the club.
type Checkout struct {
	svc    *Service
	config CheckoutConfig
}

func NewCheckout(svc *Service, cfg CheckoutConfig) *Checkout {
	stripe.Key = cfg.SecretKey
	if cfg.Currency == "" {
		cfg.Currency = "inr"
	}
	return &Checkout{svc: svc, config: cfg}
}

type CreateCheckoutInput struct {
	Kind       string `json:"kind"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

func (in *CreateCheckoutInput) Trim() {
	in.Kind = strings.TrimSpace(in.Kind)
	in.SuccessURL = strings.TrimSpace(in.SuccessURL)
	in.CancelURL = strings.TrimSpace(in.CancelURL)
}

// CreateSession builds a one-time-payment checkout session for a
// subscription charge. The club id and kind ride along as metadata so
// the webhook can finish the recording.
func (c *Checkout) CreateSession(ctx context.Context, clubID string, in CreateCheckoutInput) (string, error) {
	in.Trim()
	if clubID == "" {
		return "", fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	if !IsValidKind(in.Kind) {
		return "", fmt.Errorf("%w: kind must be setup, monthly or yearly", ErrBadRequest)
	}
	if in.SuccessURL == "" || in.CancelURL == "" {
		return "", fmt.Errorf("%w: successUrl and cancelUrl are required", ErrBadRequest)
	}

	clubRec, err := c.svc.clubs.Get(ctx, clubID)
	if err != nil {
		return "", err
	}

	amount := c.svc.amountFor(in.Kind)
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.config.Currency),
					UnitAmount: stripe.Int64(amount * 100),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("%s subscription (%s) - %s", in.Kind, c.config.Currency, clubRec.Name)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"clubId": clubID,
			"kind":   in.Kind,
		},
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.URL, nil
}
