package services

import (
	"errors"
	"fmt"
	"time"

	"freshmarket_back_end/internal/models"
	"freshmarket_back_end/internal/pricing"

	"gorm.io/gorm"
)

// CartLineView is the read-model shape handed to the presentation layer.
type CartLineView struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	VendorName     string `json:"vendor_name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	ImageURL       string `json:"image_url"`
	Category       string `json:"category"`
	Stock          int    `json:"stock"`
}

type CartView struct {
	Lines  []CartLineView `json:"lines"`
	Totals pricing.Totals `json:"totals"`
}

// getOrCreateCart returns the user's cart, creating it lazily on first
// access.
func getOrCreateCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCart returns the cart lines enriched with catalog data plus derived
// totals.
func GetCart(db *gorm.DB, userID string) (*CartView, error) {
	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	var rows []CartLineView
	err = db.Table("cart_lines").
		Select(`cart_lines.product_id,
			products.name,
			COALESCE(vendor_profiles.store_name, '') AS vendor_name,
			cart_lines.unit_price_cents,
			cart_lines.quantity,
			products.image_url,
			COALESCE(categories.name, '') AS category,
			products.stock`).
		Joins("JOIN products ON products.id = cart_lines.product_id").
		Joins("LEFT JOIN vendor_profiles ON vendor_profiles.user_id = products.vendor_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("cart_lines.cart_id = ?", cart.ID).
		Order("cart_lines.added_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.Line, len(rows))
	for i, r := range rows {
		lines[i] = pricing.Line{UnitPriceCents: r.UnitPriceCents, Quantity: r.Quantity}
	}

	if rows == nil {
		rows = []CartLineView{}
	}
	return &CartView{Lines: rows, Totals: pricing.Calculate(lines)}, nil
}

// AddToCart adds qty of a product to the user's cart. The catalog price is
// captured into the line on first add; re-adding the same product only
// increments the quantity and keeps the captured price.
func AddToCart(db *gorm.DB, userID, productID string, qty int) error {
	if qty <= 0 {
		return validationf("quantity must be positive")
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}
		return err
	}

	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return err
	}

	var line models.CartLine
	err = db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&models.CartLine{
			CartID:         cart.ID,
			ProductID:      productID,
			Quantity:       qty,
			UnitPriceCents: product.PriceCents,
			AddedAt:        time.Now(),
		}).Error
	}
	if err != nil {
		return err
	}

	line.Quantity += qty
	return db.Save(&line).Error
}

// SetCartQuantity sets a line's quantity; qty <= 0 deletes the line.
func SetCartQuantity(db *gorm.DB, userID, productID string, qty int) error {
	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return err
	}

	var line models.CartLine
	err = db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: not in cart", ErrNotFound)
	}
	if err != nil {
		return err
	}

	if qty <= 0 {
		return db.Delete(&line).Error
	}

	line.Quantity = qty
	return db.Save(&line).Error
}

// RemoveFromCart deletes a single line from the user's cart.
func RemoveFromCart(db *gorm.DB, userID, productID string) error {
	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return err
	}
	return db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		Delete(&models.CartLine{}).Error
}

// ClearCart removes every line from the user's cart.
func ClearCart(db *gorm.DB, userID string) error {
	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return err
	}
	return db.Where("cart_id = ?", cart.ID).Delete(&models.CartLine{}).Error
}
