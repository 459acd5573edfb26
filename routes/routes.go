package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public storefront catalog
	SetupCatalogRoutes(r, db)

	// Customer routes (JWT-protected): profile, cart, orders
	SetupCustomerRoutes(r, db)

	// Back-office routes (API-key-protected)
	SetupAdminRoutes(r, db)
	SetupOrderAdminRoutes(r, db)
}
