package payment

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// StripeProvider charges through a Stripe PaymentIntent. stripe.Key must
// be set at startup.
type StripeProvider struct{}

func (p *StripeProvider) Name() string { return "stripe" }

func (p *StripeProvider) Charge(_ context.Context, req ChargeRequest) (*ChargeResult, error) {
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	metadata := map[string]string{"email": req.Email}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(req.AmountCents),
		Currency:     stripe.String(currency),
		ReceiptEmail: stripe.String(req.Email),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: metadata,
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Error().Err(err).Msg("stripe payment intent failed")
		return nil, err
	}

	log.Info().
		Str("reference", intent.ID).
		Int64("amount_cents", req.AmountCents).
		Msg("stripe payment intent created")
	return &ChargeResult{Reference: intent.ID}, nil
}
