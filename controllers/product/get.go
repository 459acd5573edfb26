package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/guimac3do/chica-y-nino-sub000/models"
)

// GetProducts lists active products for the storefront. Optional
// ?campaign=<slug> restricts to one campaign. Inactive products (including
// scraper imports awaiting review) never appear here.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		listProducts(db.Where("ativo = ?", true), c)
	}
}

// GetAllProducts is the back-office listing; ?all=1 includes inactive
// products. Only reachable behind the API-key middleware.
func GetAllProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db
		if c.Query("all") == "" {
			query = query.Where("ativo = ?", true)
		}
		listProducts(query, c)
	}
}

func listProducts(query *gorm.DB, c *gin.Context) {
	query = query.Preload("Sizes").Preload("Images").Preload("Campaigns")

	if campaign := c.Query("campaign"); campaign != "" {
		query = query.
			Joins("JOIN campaign_products ON campaign_products.product_id = products.id").
			Joins("JOIN campaigns ON campaigns.id = campaign_products.campaign_id").
			Where("campaigns.slug = ?", campaign)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductByID returns a single product with its sizes, images and
// campaigns. URL param: /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		err = db.Preload("Sizes").Preload("Images").Preload("Campaigns").First(&product, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
