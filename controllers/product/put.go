package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/guimac3do/chica-y-nino-sub000/models"
	"github.com/guimac3do/chica-y-nino-sub000/web"
)

type UpdateProductRequest struct {
	Nome        *string `json:"nome"`
	Descricao   *string `json:"descricao"`
	Ativo       *bool   `json:"ativo"`
	CampaignIDs *[]uint `json:"campaign_ids"`
}

// UpdateProduct sparsely updates a product; only supplied fields change.
// Sending campaign_ids replaces the campaign links wholesale.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Campaigns").First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": web.FromBindError(err)})
			return
		}

		updates := make(map[string]interface{})
		if req.Nome != nil {
			updates["nome"] = *req.Nome
		}
		if req.Descricao != nil {
			updates["descricao"] = *req.Descricao
		}
		if req.Ativo != nil {
			updates["ativo"] = *req.Ativo
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if len(updates) > 0 {
				if err := tx.Model(&product).Updates(updates).Error; err != nil {
					return err
				}
			}
			if req.CampaignIDs != nil {
				var campaigns []models.Campaign
				if len(*req.CampaignIDs) > 0 {
					if err := tx.Where("id IN ?", *req.CampaignIDs).Find(&campaigns).Error; err != nil {
						return err
					}
				}
				if err := tx.Model(&product).Association("Campaigns").Replace(campaigns); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
