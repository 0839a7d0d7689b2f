package services

import (
	"errors"
	"fmt"

	"freshmarket_back_end/internal/models"

	"gorm.io/gorm"
)

// VendorStats aggregates a vendor's sales over paid orders.
type VendorStats struct {
	ProductCount  int64 `json:"product_count"`
	ItemsSold     int64 `json:"items_sold"`
	OrderCount    int64 `json:"order_count"`
	EarningsCents int64 `json:"earnings_cents"`
}

// GetVendorProfile returns the vendor's storefront profile.
func GetVendorProfile(db *gorm.DB, userID string) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: vendor profile", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertVendorProfile creates or updates the vendor's storefront profile.
func UpsertVendorProfile(db *gorm.DB, userID, storeName, description string) (*models.VendorProfile, error) {
	if storeName == "" {
		return nil, validationf("store name is required")
	}

	var profile models.VendorProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.VendorProfile{UserID: userID, StoreName: storeName, Description: description}
		if err := db.Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}

	profile.StoreName = storeName
	profile.Description = description
	if err := db.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetVendorStats derives sales aggregates from order lines of paid orders.
func GetVendorStats(db *gorm.DB, vendorID string) (*VendorStats, error) {
	var stats VendorStats

	if err := db.Model(&models.Product{}).
		Where("vendor_id = ?", vendorID).
		Count(&stats.ProductCount).Error; err != nil {
		return nil, err
	}

	row := db.Table("order_lines").
		Select(`COALESCE(SUM(order_lines.quantity), 0) AS items_sold,
			COUNT(DISTINCT order_lines.order_id) AS order_count,
			COALESCE(SUM(order_lines.quantity * order_lines.unit_price_cents), 0) AS earnings_cents`).
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("order_lines.vendor_id = ? AND orders.payment_status = ?",
			vendorID, models.PaymentStatusPaid).
		Row()
	if err := row.Scan(&stats.ItemsSold, &stats.OrderCount, &stats.EarningsCents); err != nil {
		return nil, err
	}

	return &stats, nil
}

// VendorOrderView is one buyer order restricted to this vendor's lines.
type VendorOrderView struct {
	OrderID     string             `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	Status      models.OrderStatus `json:"status"`
	CreatedAt   string             `json:"created_at"`
	Lines       []models.OrderLine `json:"lines"`
}

// GetVendorOrders returns paid orders containing the vendor's products,
// newest first, with only the vendor's own lines attached.
func GetVendorOrders(db *gorm.DB, vendorID string) ([]VendorOrderView, error) {
	var orders []models.Order
	err := db.Distinct("orders.*").
		Joins("JOIN order_lines ON order_lines.order_id = orders.id").
		Where("order_lines.vendor_id = ? AND orders.payment_status = ?",
			vendorID, models.PaymentStatusPaid).
		Order("orders.created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	views := make([]VendorOrderView, 0, len(orders))
	for _, o := range orders {
		var lines []models.OrderLine
		if err := db.Where("order_id = ? AND vendor_id = ?", o.ID, vendorID).
			Find(&lines).Error; err != nil {
			return nil, err
		}
		views = append(views, VendorOrderView{
			OrderID:     o.ID,
			OrderNumber: o.Number,
			Status:      o.Status,
			CreatedAt:   o.CreatedAt.Format("2006-01-02 15:04:05"),
			Lines:       lines,
		})
	}
	return views, nil
}
