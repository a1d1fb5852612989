package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	addressControllers "github.com/freshkart-dev/grocery-api/controllers/address"
	cartControllers "github.com/freshkart-dev/grocery-api/controllers/cart"
	orderControllers "github.com/freshkart-dev/grocery-api/controllers/order"
	productcontroller "github.com/freshkart-dev/grocery-api/controllers/product"
	userControllers "github.com/freshkart-dev/grocery-api/controllers/user"
	wishlistControllers "github.com/freshkart-dev/grocery-api/controllers/wishlist"
	"github.com/freshkart-dev/grocery-api/middleware"
)

// SetupUserRoutes registers the public catalog and the JWT-protected
// storefront endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	// ──────────────── Browse Catalog (public) ────────────────
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/categories", productcontroller.GetCategories(db))

	authed := r.Group("")
	authed.Use(middleware.ValidateToken)
	{
		// ──────────────── Account ────────────────
		authed.GET("/me", userControllers.GetUser(db))
		authed.PUT("/me", userControllers.UpdateUser(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := authed.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(db))
			cartGroup.POST("", cartControllers.AddCartItem(db))
			cartGroup.PATCH("/:itemId", cartControllers.UpdateCartItem(db))
			cartGroup.DELETE("/:itemId", cartControllers.DeleteCartItem(db))
		}

		// ──────────────── Wishlist ────────────────
		wishlistGroup := authed.Group("/wishlist")
		{
			wishlistGroup.GET("", wishlistControllers.GetWishlist(db))
			wishlistGroup.POST("", wishlistControllers.AddWishlistItem(db))
			wishlistGroup.DELETE("/:productId", wishlistControllers.DeleteWishlistItem(db))
		}

		// ──────────────── Addresses ────────────────
		addressGroup := authed.Group("/addresses")
		{
			addressGroup.GET("", addressControllers.GetAddresses(db))
			addressGroup.POST("", addressControllers.CreateAddress(db))
		}

		// ──────────────── Orders ────────────────
		orderGroup := authed.Group("/orders")
		{
			orderGroup.GET("", orderControllers.GetUserOrdersHandler(db))
			orderGroup.POST("", orderControllers.PlaceOrderHandler(db))
		}
	}
}
