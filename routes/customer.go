package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/guimac3do/chica-y-nino-sub000/controllers/cart"
	customerControllers "github.com/guimac3do/chica-y-nino-sub000/controllers/customer"
	orderControllers "github.com/guimac3do/chica-y-nino-sub000/controllers/order"
	"github.com/guimac3do/chica-y-nino-sub000/middleware"
)

// SetupCustomerRoutes registers every JWT-protected storefront endpoint:
// profile, cart and the customer side of orders.
func SetupCustomerRoutes(r *gin.Engine, db *gorm.DB) {
	// ──────────────── Profile ────────────────
	me := r.Group("/me")
	me.Use(middleware.ValidateToken)
	{
		me.GET("", customerControllers.GetMe(db))
		me.PUT("", customerControllers.UpdateMe(db))
	}

	// ──────────────── Shopping cart ────────────────
	cart := r.Group("/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.POST("/add", cartControllers.AddItem(db))
		cart.GET("", cartControllers.GetCart(db))
		cart.PUT("/update", cartControllers.UpdateItem(db))
		cart.DELETE("/remove", cartControllers.RemoveItem(db))
		cart.DELETE("/clear", cartControllers.ClearCart(db))
	}

	// ──────────────── Orders (customer side) ────────────────
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		orders.POST("", orderControllers.PlaceOrderHandler(db))
		orders.POST("/:id/cancel", orderControllers.CancelOrderHandler(db))
		orders.POST("/:id/items/:itemId/cancel", orderControllers.CancelOrderItemHandler(db))
	}

	ordersUser := r.Group("/orders-user")
	ordersUser.Use(middleware.ValidateToken)
	{
		ordersUser.GET("/:id", orderControllers.GetCustomerOrderHandler(db))
	}
}
