package services

import (
	"context"
	"time"

	"freshmarket_back_end/internal/models"
	"freshmarket_back_end/internal/payment"
	"freshmarket_back_end/internal/utils"
	"freshmarket_back_end/internal/ws"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CheckoutService orchestrates payment, order creation and the
// side effects of a completed checkout. Mailer and Hub may be nil.
type CheckoutService struct {
	DB       *gorm.DB
	Provider payment.Provider
	Mailer   *utils.Mailer
	Hub      *ws.Hub
}

type CheckoutInput struct {
	Email      string
	CardNumber string
	Expiry     string
	CVV        string
}

// CompleteCheckout charges the configured provider for the cart total,
// builds the order from the cart and settles it as confirmed/paid.
// There is no reachable payment-failure terminal state with the simulated
// provider; a Stripe error surfaces before any order exists.
func (s *CheckoutService) CompleteCheckout(ctx context.Context, userID string, in CheckoutInput) (*models.Order, error) {
	if in.Email == "" || in.CardNumber == "" || in.Expiry == "" || in.CVV == "" {
		return nil, validationf("payment details are incomplete")
	}

	cart, err := GetCart(s.DB, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	charge, err := s.Provider.Charge(ctx, payment.ChargeRequest{
		AmountCents: cart.Totals.TotalCents,
		Currency:    "usd",
		Email:       in.Email,
		CardNumber:  in.CardNumber,
		Expiry:      in.Expiry,
		CVV:         in.CVV,
		Metadata:    map[string]string{"user_id": userID},
	})
	if err != nil {
		return nil, err
	}

	order, err := CreateOrderFromCart(s.DB, userID)
	if err != nil {
		// The charge has no order to attach to; with the simulator this
		// is a no-op, with Stripe the intent stays uncaptured.
		log.Error().Err(err).Str("payment_ref", charge.Reference).
			Msg("order creation failed after charge")
		return nil, err
	}

	if err := MarkOrderPaid(s.DB, order.ID, charge.Reference); err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusConfirmed
	order.PaymentStatus = models.PaymentStatusPaid
	order.PaymentRef = charge.Reference

	log.Info().
		Str("order", order.Number).
		Str("provider", s.Provider.Name()).
		Int64("total_cents", order.TotalCents).
		Msg("checkout completed")

	s.notifyVendors(order)
	go s.sendConfirmation(in.Email, order)

	return order, nil
}

func (s *CheckoutService) notifyVendors(order *models.Order) {
	if s.Hub == nil {
		return
	}
	seen := map[string]bool{}
	for _, l := range order.Lines {
		if seen[l.VendorID] {
			continue
		}
		seen[l.VendorID] = true
		s.Hub.Notify(l.VendorID, ws.OrderEvent{
			Type:        "order.created",
			OrderID:     order.ID,
			OrderNumber: order.Number,
			Status:      string(order.Status),
			TotalCents:  order.TotalCents,
			At:          time.Now(),
		})
	}
}

func (s *CheckoutService) sendConfirmation(email string, order *models.Order) {
	if err := s.Mailer.Send(email,
		"Your FreshMarket order "+order.Number,
		utils.OrderConfirmationHTML(order), nil, ""); err != nil {
		log.Warn().Err(err).Str("order", order.Number).Msg("confirmation mail failed")
	}
}
