package user

import (
	"net/http"

	"freshmarket_back_end/internal/cache"
	"freshmarket_back_end/internal/database"
	"freshmarket_back_end/internal/handlers"
	"freshmarket_back_end/internal/services"
	"freshmarket_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/orders
func GetMyOrders(c *gin.Context) {
	orders, err := services.GetOrders(database.DB, c.GetString("user_id"))
	if err != nil {
		handlers.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orders/:id
func GetOrderByID(c *gin.Context) {
	order, err := services.GetOrder(database.DB, c.GetString("user_id"), c.Param("id"))
	if err != nil {
		handlers.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /api/orders/:id/invoice returns a printable PDF invoice.
func GetOrderInvoice(c *gin.Context) {
	userID := c.GetString("user_id")

	order, err := services.GetOrder(database.DB, userID, c.Param("id"))
	if err != nil {
		handlers.Fail(c, err)
		return
	}

	buyer, err := cache.GetUser(database.DB, userID)
	if err != nil {
		handlers.Fail(c, err)
		return
	}

	pdf, err := utils.RenderPDF(c.Request.Context(), utils.InvoiceHTML(order, buyer))
	if err != nil {
		handlers.Fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="invoice-`+order.Number+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/orders/:id/qr returns the pickup code as a PNG QR.
func GetOrderQR(c *gin.Context) {
	order, err := services.GetOrder(database.DB, c.GetString("user_id"), c.Param("id"))
	if err != nil {
		handlers.Fail(c, err)
		return
	}

	png, err := utils.PickupQR(order.Number)
	if err != nil {
		handlers.Fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
