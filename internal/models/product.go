package models

import "time"

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;not null" json:"name"`
	Slug string `gorm:"size:64;uniqueIndex;not null" json:"slug"`
}

type Product struct {
	ID          string   `gorm:"primaryKey;size:36" json:"id"`
	VendorID    string   `gorm:"size:36;index;not null" json:"vendor_id"`
	Name        string   `gorm:"size:255;not null" json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `gorm:"not null" json:"price_cents"`
	Stock       int      `gorm:"not null;default:0" json:"stock"`
	CategoryID  uint     `gorm:"index" json:"category_id"`
	Category    Category `gorm:"foreignKey:CategoryID" json:"-"`
	ImageURL    string   `gorm:"size:512" json:"image_url"`
	Tags        []string `gorm:"serializer:json" json:"tags,omitempty"`
	IsActive    bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
