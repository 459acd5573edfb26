package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/guimac3do/chica-y-nino-sub000/models"
	"github.com/guimac3do/chica-y-nino-sub000/web"
)

type UpdateSizeRequest struct {
	Tamanho *string  `json:"tamanho"`
	Preco   *float64 `json:"preco" binding:"omitempty,gt=0"`
}

// AddSize attaches a new size/price variant to a product.
func AddSize(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var req SizeInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": web.FromBindError(err)})
			return
		}

		size := models.ProductSize{
			ProductID: product.ID,
			Tamanho:   req.Tamanho,
			Preco:     req.Preco,
		}
		if err := db.Create(&size).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create size"})
			return
		}

		c.JSON(http.StatusCreated, size)
	}
}

// UpdateSize sparsely updates a size's label and/or price. A price change
// is reflected in the displayed totals of existing orders, which resolve
// prices live.
func UpdateSize(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		sizeID, err := strconv.Atoi(c.Param("sizeId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid size ID"})
			return
		}

		var size models.ProductSize
		err = db.Where("id = ? AND product_id = ?", sizeID, productID).First(&size).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Size not found"})
			return
		}

		var req UpdateSizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": web.FromBindError(err)})
			return
		}

		updates := make(map[string]interface{})
		if req.Tamanho != nil {
			updates["tamanho"] = *req.Tamanho
		}
		if req.Preco != nil {
			updates["preco"] = *req.Preco
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
			return
		}

		if err := db.Model(&size).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update size"})
			return
		}

		c.JSON(http.StatusOK, size)
	}
}

// DeleteSize removes a size variant. Order lines referencing it keep the id
// and degrade at display time.
func DeleteSize(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		sizeID, err := strconv.Atoi(c.Param("sizeId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid size ID"})
			return
		}

		result := db.Where("id = ? AND product_id = ?", sizeID, productID).
			Delete(&models.ProductSize{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete size"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Size not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Size deleted"})
	}
}
