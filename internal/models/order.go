package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // created from the cart, payment not settled
	OrderStatusConfirmed OrderStatus = "confirmed" // payment settled
	OrderStatusShipped   OrderStatus = "shipped"   // dispatched by the vendor
	OrderStatusDelivered OrderStatus = "delivered" // received by the buyer

	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// statusRank orders the lifecycle; transitions only move forward.
var statusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusConfirmed: 1,
	OrderStatusShipped:   2,
	OrderStatusDelivered: 3,
}

// CanAdvanceTo reports whether moving from s to next is a forward step.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to == from+1
}

// Order is an immutable snapshot of a cart at checkout time; only the two
// status fields change after creation. All amounts are integer cents.
type Order struct {
	ID            string        `gorm:"primaryKey;size:36" json:"id"`
	Number        string        `gorm:"size:32;uniqueIndex;not null" json:"number"`
	UserID        string        `gorm:"size:36;index;not null" json:"user_id"`
	SubtotalCents int64         `gorm:"not null" json:"subtotal_cents"`
	TaxCents      int64         `gorm:"not null" json:"tax_cents"`
	ShippingCents int64         `gorm:"not null" json:"shipping_cents"`
	TotalCents    int64         `gorm:"not null" json:"total_cents"`
	Status        OrderStatus   `gorm:"type:varchar(16);not null;default:pending" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(16);not null;default:unpaid" json:"payment_status"`
	PaymentRef    string        `gorm:"size:128" json:"payment_ref,omitempty"`
	Lines         []OrderLine   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"-"`
}

// OrderLine copies name and price at order-creation time so catalog edits
// never rewrite history.
type OrderLine struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	OrderID        string `gorm:"size:36;index;not null" json:"-"`
	ProductID      string `gorm:"size:36;not null" json:"product_id"`
	ProductName    string `gorm:"size:255;not null" json:"product_name"`
	VendorID       string `gorm:"size:36;index;not null" json:"vendor_id"`
	Quantity       int    `gorm:"not null" json:"quantity"`
	UnitPriceCents int64  `gorm:"not null" json:"unit_price_cents"`
}
