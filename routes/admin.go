package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/guimac3do/chica-y-nino-sub000/controllers/admin"
	customerControllers "github.com/guimac3do/chica-y-nino-sub000/controllers/customer"
	productcontroller "github.com/guimac3do/chica-y-nino-sub000/controllers/product"
	scraperControllers "github.com/guimac3do/chica-y-nino-sub000/controllers/scraper"
	"github.com/guimac3do/chica-y-nino-sub000/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires the API-key
// middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Operators & Customers ───────────
		adminGroup.GET("/admins", adminController.GetAllAdmins(db))
		adminGroup.POST("/admins", adminController.CreateAdmin(db))
		adminGroup.POST("/admins/:id/approve", adminController.ApproveAdmin(db))
		adminGroup.GET("/customers", customerControllers.GetAllCustomers(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.GET("", productcontroller.GetAllProducts(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db))

			productAdmin.POST("/:id/sizes", productcontroller.AddSize(db))
			productAdmin.PUT("/:id/sizes/:sizeId", productcontroller.UpdateSize(db))
			productAdmin.DELETE("/:id/sizes/:sizeId", productcontroller.DeleteSize(db))

			productAdmin.POST("/:id/images", productcontroller.UploadProductImage(db))
			productAdmin.DELETE("/:id/images/:imageId", productcontroller.DeleteProductImage(db))
		}

		// ─────────── Campaign Management ───────────
		campaignAdmin := adminGroup.Group("/campaigns")
		{
			campaignAdmin.POST("", productcontroller.CreateCampaign(db))
			campaignAdmin.PUT("/:id", productcontroller.UpdateCampaign(db))
			campaignAdmin.GET("", productcontroller.GetCampaigns(db))
			campaignAdmin.DELETE("/:id", productcontroller.DeleteCampaign(db))
		}

		// ─────────── Listing Scraper ───────────
		adminGroup.POST("/scraper/import", scraperControllers.ImportFromURL(db))
	}
}
