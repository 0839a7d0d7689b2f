package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freshmarket_back_end/internal/models"
	"freshmarket_back_end/internal/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newOrderNumber builds a human-readable order reference, e.g.
// FM-20260901-3F2A9C1B.
func newOrderNumber(id string, at time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(id, "-", ""))[:8]
	return fmt.Sprintf("FM-%s-%s", at.Format("20060102"), short)
}

// CreateOrderFromCart snapshots the user's cart into an immutable order.
// Inside one transaction it creates the order and its lines from the
// captured cart-line prices, decrements product stock, and deletes the
// cart lines. Any failure rolls the whole thing back.
func CreateOrderFromCart(db *gorm.DB, userID string) (*models.Order, error) {
	var order *models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no cart", ErrNotFound)
			}
			return err
		}

		var lines []models.CartLine
		if err := tx.Where("cart_id = ?", cart.ID).Order("added_at").Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		now := time.Now()
		orderID := uuid.NewString()

		priceLines := make([]pricing.Line, 0, len(lines))
		orderLines := make([]models.OrderLine, 0, len(lines))

		for _, l := range lines {
			var product models.Product
			if err := tx.First(&product, "id = ?", l.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %s", ErrNotFound, l.ProductID)
				}
				return err
			}

			// Guarded decrement: refuses to oversell even when two
			// checkouts race on the same product.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", l.ProductID, l.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", l.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s (available %d, requested %d)",
					ErrInsufficientStock, product.Name, product.Stock, l.Quantity)
			}

			priceLines = append(priceLines, pricing.Line{
				UnitPriceCents: l.UnitPriceCents,
				Quantity:       l.Quantity,
			})
			orderLines = append(orderLines, models.OrderLine{
				OrderID:        orderID,
				ProductID:      product.ID,
				ProductName:    product.Name,
				VendorID:       product.VendorID,
				Quantity:       l.Quantity,
				UnitPriceCents: l.UnitPriceCents,
			})
		}

		totals := pricing.Calculate(priceLines)

		o := models.Order{
			ID:            orderID,
			Number:        newOrderNumber(orderID, now),
			UserID:        userID,
			SubtotalCents: totals.SubtotalCents,
			TaxCents:      totals.TaxCents,
			ShippingCents: totals.ShippingCents,
			TotalCents:    totals.TotalCents,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusUnpaid,
			CreatedAt:     now,
		}
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		if err := tx.Create(&orderLines).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}

		o.Lines = orderLines
		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// MarkOrderPaid settles payment on a pending order: paymentStatus becomes
// paid and status advances to confirmed.
func MarkOrderPaid(db *gorm.DB, orderID, paymentRef string) error {
	res := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
		Updates(map[string]any{
			"status":         models.OrderStatusConfirmed,
			"payment_status": models.PaymentStatusPaid,
			"payment_ref":    paymentRef,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: order %s not pending", ErrNotFound, orderID)
	}
	return nil
}

// GetOrders returns the user's orders, newest first, lines included.
func GetOrders(db *gorm.DB, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := db.Preload("Lines").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns one order; ownership is enforced here, not in the
// handler.
func GetOrder(db *gorm.DB, userID, orderID string) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Lines").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// AdvanceOrderStatus moves an order one step forward in its lifecycle
// (confirmed -> shipped -> delivered). The vendor must own at least one
// line of the order; backwards or skipping transitions are rejected.
func AdvanceOrderStatus(db *gorm.DB, vendorID, orderID string, next models.OrderStatus) error {
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order", ErrNotFound)
		}
		return err
	}

	var owned int64
	if err := db.Model(&models.OrderLine{}).
		Where("order_id = ? AND vendor_id = ?", orderID, vendorID).
		Count(&owned).Error; err != nil {
		return err
	}
	if owned == 0 {
		return fmt.Errorf("%w: order has no lines for this vendor", ErrUnauthorized)
	}

	if !order.Status.CanAdvanceTo(next) {
		return validationf("cannot move order from %s to %s", order.Status, next)
	}

	return db.Model(&order).Update("status", next).Error
}
