// Package cache keeps hot read models (users, products) in Redis in front
// of the database. Every helper degrades to a plain database read when
// Redis is not connected.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"freshmarket_back_end/internal/database"
	"freshmarket_back_end/internal/models"

	"gorm.io/gorm"
)

const (
	userTTL    = 5 * time.Minute
	productTTL = 10 * time.Minute
)

// GetUser reads a user through the Redis cache.
func GetUser(db *gorm.DB, userID string) (*models.User, error) {
	ctx := context.Background()
	key := "user:" + userID

	if database.Redis != nil {
		if data, err := database.Redis.Get(ctx, key).Result(); err == nil {
			var user models.User
			if json.Unmarshal([]byte(data), &user) == nil {
				return &user, nil
			}
		}
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	if database.Redis != nil {
		if data, err := json.Marshal(user); err == nil {
			database.Redis.Set(ctx, key, data, userTTL)
		}
	}
	return &user, nil
}

// InvalidateUser drops a user from the cache after a profile change.
func InvalidateUser(userID string) {
	if database.Redis != nil {
		database.Redis.Del(context.Background(), "user:"+userID)
	}
}

// GetProduct reads a product through the Redis cache.
func GetProduct(db *gorm.DB, productID string) (*models.Product, error) {
	ctx := context.Background()
	key := "product:" + productID

	if database.Redis != nil {
		if data, err := database.Redis.Get(ctx, key).Result(); err == nil {
			var product models.Product
			if json.Unmarshal([]byte(data), &product) == nil {
				return &product, nil
			}
		}
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		return nil, err
	}

	if database.Redis != nil {
		if data, err := json.Marshal(product); err == nil {
			database.Redis.Set(ctx, key, data, productTTL)
		}
	}
	return &product, nil
}

// InvalidateProduct drops a product from the cache after a catalog write.
func InvalidateProduct(productID string) {
	if database.Redis != nil {
		database.Redis.Del(context.Background(), "product:"+productID)
	}
}
