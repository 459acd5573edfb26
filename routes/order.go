package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/guimac3do/chica-y-nino-sub000/controllers/order"
	"github.com/guimac3do/chica-y-nino-sub000/middleware"
)

// SetupOrderAdminRoutes registers the back-office order surface under
// "/pedidos". Requires the API-key middleware.
func SetupOrderAdminRoutes(r *gin.Engine, db *gorm.DB) {
	pedidos := r.Group("/pedidos")
	pedidos.Use(middleware.ValidateAPIKey)
	{
		// Fetch all orders, newest first
		pedidos.GET("", orderControllers.ListOrdersHandler(db))

		// Excel download, one row per line item
		pedidos.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))

		// websocket endpoint for real-time order updates
		pedidos.GET("/ws", orderControllers.OrderFeedHandler)

		// Fetch a single order with computed fields
		pedidos.GET("/:id", orderControllers.GetOrderAdminHandler(db))

		// Bump the payment-reminder counter
		pedidos.POST("/:id/lembrete", orderControllers.SendReminderHandler(db))

		// Sparse payment/stock status update on one line item
		pedidos.PUT("/:id/produtos/:itemId/status", orderControllers.UpdateItemStatusHandler(db))

		// Mark a line item as processed by fulfilment
		pedidos.PUT("/:id/produtos/:itemId/processado", orderControllers.MarkItemProcessedHandler(db))
	}
}
