package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/freshkart-dev/grocery-api/controllers/order"
	productcontroller "github.com/freshkart-dev/grocery-api/controllers/product"
	"github.com/freshkart-dev/grocery-api/middleware"
	"github.com/freshkart-dev/grocery-api/seed"
)

// SetupAdminRoutes registers the back-office endpoints. All require the
// X-API-KEY header.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ──────────────── Catalog Management ────────────────
		adminGroup.POST("/products", productcontroller.CreateProduct(db))
		adminGroup.PUT("/products/:id", productcontroller.UpdateProduct(db))
		adminGroup.DELETE("/products/:id", productcontroller.DeleteProduct(db))

		// ──────────────── Orders ────────────────
		adminGroup.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		adminGroup.POST("/orders/:orderId/status", orderControllers.UpdateOrderStatusHandler(db))
		adminGroup.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))
		adminGroup.GET("/orders/ws", orderControllers.OrderFeedHandler)

		// ──────────────── Seeding ────────────────
		adminGroup.POST("/seed", seed.Handler(db))
	}
}
