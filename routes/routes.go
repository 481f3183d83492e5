package routes

import (
	"time"

	"ecom-backend/controllers"
	"ecom-backend/middleware"
	"ecom-backend/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Register wires all API routes. Cart, checkout and order routes require a
// valid bearer token.
func Register(
	r *gin.Engine,
	auth *controllers.AuthController,
	products *controllers.ProductController,
	cart *controllers.CartController,
	checkout *controllers.CheckoutController,
	tokens *services.TokenService,
) {
	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Use(middleware.RateLimit(rate.Every(time.Minute/100), 50))
	{
		authRoutes.POST("/register", auth.Register)
		authRoutes.POST("/login", auth.Login)
		authRoutes.GET("/me", middleware.RequireAuth(tokens), auth.Me)
	}

	api.GET("/products", products.List)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(tokens))
	{
		protected.GET("/cart", cart.GetCart)
		protected.POST("/cart", cart.AddItem)
		protected.PUT("/cart/:id", cart.UpdateQuantity)
		protected.DELETE("/cart/:id", cart.RemoveItem)
		protected.DELETE("/cart", cart.ClearCart)
		protected.POST("/checkout", checkout.Checkout)
		protected.GET("/orders", checkout.ListOrders)
	}
}
