package catalog

import (
	"net/http"

	"freshmarket_back_end/internal/cache"
	"freshmarket_back_end/internal/database"
	"freshmarket_back_end/internal/handlers"
	"freshmarket_back_end/internal/models"
	"freshmarket_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// ProductView is a catalog entry joined with its vendor's store name.
type ProductView struct {
	models.Product
	VendorName string `json:"vendor_name"`
}

// GET /api/products?category=slug
func ListProducts(c *gin.Context) {
	q := database.DB.Table("products").
		Select("products.*, COALESCE(vendor_profiles.store_name, '') AS vendor_name").
		Joins("LEFT JOIN vendor_profiles ON vendor_profiles.user_id = products.vendor_id").
		Where("products.is_active = ?", true)

	if slug := c.Query("category"); slug != "" {
		q = q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", slug)
	}

	var products []ProductView
	if err := q.Order("products.created_at DESC").Scan(&products).Error; err != nil {
		handlers.Fail(c, err)
		return
	}
	if products == nil {
		products = []ProductView{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /api/products/search?q=...
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	products, err := services.SearchProducts(database.DB, query)
	if err != nil {
		handlers.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /api/products/:id
func GetProduct(c *gin.Context) {
	product, err := cache.GetProduct(database.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// GET /api/categories
func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("name").Find(&categories).Error; err != nil {
		handlers.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
