package routes

import (
	"freshmarket_back_end/internal/config"
	"freshmarket_back_end/internal/handlers"
	catalogHandlers "freshmarket_back_end/internal/handlers/catalog"
	userHandlers "freshmarket_back_end/internal/handlers/user"
	vendorHandlers "freshmarket_back_end/internal/handlers/vendor"
	"freshmarket_back_end/internal/middleware"
	"freshmarket_back_end/internal/services"
	"freshmarket_back_end/internal/utils"
	"freshmarket_back_end/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries the wired services handlers close over.
type Deps struct {
	Checkout *services.CheckoutService
	Mailer   *utils.Mailer
	Hub      *ws.Hub
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.C.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")

	// Auth
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", userHandlers.Register(d.Mailer))
		authGroup.POST("/login", middleware.LoginRateLimit(), userHandlers.Login)
		authGroup.POST("/logout", userHandlers.Logout)
		authGroup.GET("/verify", userHandlers.VerifyEmail)
		authGroup.GET("/me", middleware.AuthRequired(), userHandlers.Me)
		authGroup.GET("/:provider", handlers.BeginOAuth)
		authGroup.GET("/:provider/callback", handlers.OAuthCallback)
	}

	// Catalog (public)
	api.GET("/products", catalogHandlers.ListProducts)
	api.GET("/products/search", catalogHandlers.SearchProducts)
	api.GET("/products/:id", catalogHandlers.GetProduct)
	api.GET("/categories", catalogHandlers.ListCategories)

	// Cart
	cart := api.Group("/cart", middleware.AuthRequired())
	{
		cart.GET("", userHandlers.GetCart)
		cart.POST("/add", userHandlers.AddToCart)
		cart.PUT("/quantity", userHandlers.SetCartQuantity)
		cart.DELETE("/:productId", userHandlers.RemoveFromCart)
		cart.DELETE("", userHandlers.ClearCart)
	}

	// Checkout + order history
	api.POST("/checkout", middleware.AuthRequired(), userHandlers.Checkout(d.Checkout))

	orders := api.Group("/orders", middleware.AuthRequired())
	{
		orders.GET("", userHandlers.GetMyOrders)
		orders.GET("/:id", userHandlers.GetOrderByID)
		orders.GET("/:id/invoice", userHandlers.GetOrderInvoice)
		orders.GET("/:id/qr", userHandlers.GetOrderQR)
	}

	// Vendor dashboard
	vendor := api.Group("/vendor", middleware.AuthRequired(), middleware.VendorOnly())
	{
		vendor.GET("/dashboard", vendorHandlers.Dashboard)
		vendor.PUT("/profile", vendorHandlers.UpdateProfile)
		vendor.GET("/products", vendorHandlers.ListProducts)
		vendor.POST("/products", vendorHandlers.CreateProduct)
		vendor.PUT("/products/:id", vendorHandlers.UpdateProduct)
		vendor.DELETE("/products/:id", vendorHandlers.DeleteProduct)
		vendor.POST("/products/:id/image", vendorHandlers.UploadProductImage)
		vendor.GET("/orders", vendorHandlers.ListOrders)
		vendor.PATCH("/orders/:id/status", vendorHandlers.AdvanceOrderStatus(d.Hub))
		vendor.GET("/orders/ws", vendorHandlers.OrdersWS(d.Hub))
	}
}
