// Package payment abstracts the charge step of checkout behind a small
// provider interface so the simulated dev-mode path and the Stripe path
// are never conflated.
package payment

import "context"

type ChargeRequest struct {
	AmountCents int64
	Currency    string
	Email       string

	// Card fields are presence-checked upstream; no provider here ever
	// stores them.
	CardNumber string
	Expiry     string
	CVV        string

	Metadata map[string]string
}

type ChargeResult struct {
	Reference string // provider-side payment id
}

type Provider interface {
	Name() string
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// FromConfig picks the provider by name; anything other than "stripe"
// yields the simulator.
func FromConfig(name string) Provider {
	if name == "stripe" {
		return &StripeProvider{}
	}
	return &Simulator{}
}
