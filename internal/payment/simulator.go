package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Simulator is the dev-mode provider: no gateway is called and every
// charge succeeds unconditionally. References are prefixed "sim_" so they
// can never be mistaken for real payment ids.
type Simulator struct{}

func (s *Simulator) Name() string { return "simulated" }

func (s *Simulator) Charge(_ context.Context, req ChargeRequest) (*ChargeResult, error) {
	ref := "sim_" + uuid.NewString()
	log.Info().
		Str("reference", ref).
		Int64("amount_cents", req.AmountCents).
		Str("email", req.Email).
		Msg("simulated payment accepted")
	return &ChargeResult{Reference: ref}, nil
}
