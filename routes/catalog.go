package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/guimac3do/chica-y-nino-sub000/controllers/product"
)

// SetupCatalogRoutes registers the public storefront catalog.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/campaigns", productcontroller.GetCampaigns(db))
	r.GET("/campaigns/:slug/products", productcontroller.GetCampaignProducts(db))
}
