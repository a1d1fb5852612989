package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up Auth, User, and Admin
// route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Catalog + JWT-protected storefront routes
	SetupUserRoutes(r, db)

	// Back-office routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
