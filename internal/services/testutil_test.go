package services

import (
	"testing"

	"freshmarket_back_end/internal/database"
	"freshmarket_back_end/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database. The pool is pinned
// to a single connection so :memory: state survives across queries.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.NewString(),
		Email:    uuid.NewString() + "@example.com",
		Provider: models.ProviderLocal,
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return &user
}

func seedProduct(t *testing.T, db *gorm.DB, vendorID string, priceCents int64, stock int) *models.Product {
	t.Helper()
	product := models.Product{
		ID:         uuid.NewString(),
		VendorID:   vendorID,
		Name:       "Heirloom Tomatoes",
		PriceCents: priceCents,
		Stock:      stock,
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seeding product: %v", err)
	}
	return &product
}
