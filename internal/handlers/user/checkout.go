package user

import (
	"net/http"

	"freshmarket_back_end/internal/handlers"
	"freshmarket_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// Checkout completes the purchase: charge, order creation, cart clear.
// POST /api/checkout
func Checkout(svc *services.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email      string `json:"email" binding:"required,email"`
			CardNumber string `json:"card_number" binding:"required"`
			Expiry     string `json:"expiry" binding:"required"`
			CVV        string `json:"cvv" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment details are incomplete"})
			return
		}

		order, err := svc.CompleteCheckout(c.Request.Context(), c.GetString("user_id"), services.CheckoutInput{
			Email:      input.Email,
			CardNumber: input.CardNumber,
			Expiry:     input.Expiry,
			CVV:        input.CVV,
		})
		if err != nil {
			handlers.Fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order_id":     order.ID,
			"order_number": order.Number,
			"status":       order.Status,
			"total_cents":  order.TotalCents,
		})
	}
}
