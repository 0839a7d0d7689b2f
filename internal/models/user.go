package models

import "time"

const (
	RoleBuyer  = "buyer"
	RoleVendor = "vendor"

	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

type User struct {
	ID            string `gorm:"primaryKey;size:36" json:"user_id"`
	Email         string `gorm:"size:255;not null;uniqueIndex:idx_users_email_provider" json:"email"`
	Provider      string `gorm:"size:16;not null;default:local;uniqueIndex:idx_users_email_provider" json:"provider,omitempty"`
	Password      string `gorm:"size:255" json:"-"`
	Name          string `gorm:"size:128" json:"name,omitempty"`
	Role          string `gorm:"size:16;not null;default:buyer" json:"role,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
