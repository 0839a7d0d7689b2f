package models

import "time"

// VendorProfile attaches a storefront identity to a vendor user. Sales and
// earnings aggregates are derived from order lines, not stored here.
type VendorProfile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	StoreName   string    `gorm:"size:128;not null" json:"store_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}
