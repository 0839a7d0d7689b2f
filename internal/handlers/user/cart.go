package user

import (
	"net/http"

	"freshmarket_back_end/internal/database"
	"freshmarket_back_end/internal/handlers"
	"freshmarket_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/cart
func GetCart(c *gin.Context) {
	view, err := services.GetCart(database.DB, c.GetString("user_id"))
	if err != nil {
		handlers.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/cart/add
func AddToCart(c *gin.Context) {
	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	userID := c.GetString("user_id")
	if err := services.AddToCart(database.DB, userID, input.ProductID, input.Quantity); err != nil {
		handlers.Fail(c, err)
		return
	}

	view, err := services.GetCart(database.DB, userID)
	if err != nil {
		handlers.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PUT /api/cart/quantity
func SetCartQuantity(c *gin.Context) {
	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	userID := c.GetString("user_id")
	if err := services.SetCartQuantity(database.DB, userID, input.ProductID, input.Quantity); err != nil {
		handlers.Fail(c, err)
		return
	}

	view, err := services.GetCart(database.DB, userID)
	if err != nil {
		handlers.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /api/cart/:productId
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if err := services.RemoveFromCart(database.DB, userID, c.Param("productId")); err != nil {
		handlers.Fail(c, err)
		return
	}

	view, err := services.GetCart(database.DB, userID)
	if err != nil {
		handlers.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /api/cart
func ClearCart(c *gin.Context) {
	if err := services.ClearCart(database.DB, c.GetString("user_id")); err != nil {
		handlers.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
