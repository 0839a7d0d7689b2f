package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"size:36;uniqueIndex;not null" json:"user_id"` // one cart per user
	Lines     []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"lines"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

// CartLine holds the unit price captured when the product was first added;
// later catalog price changes do not touch existing lines. Quantity is
// always > 0; setting it to zero or below deletes the row instead.
type CartLine struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CartID         uint      `gorm:"uniqueIndex:idx_cart_product;not null" json:"-"`
	ProductID      string    `gorm:"size:36;uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	UnitPriceCents int64     `gorm:"not null" json:"unit_price_cents"`
	AddedAt        time.Time `json:"added_at"`
}
