package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/guimac3do/chica-y-nino-sub000/models"
	"github.com/guimac3do/chica-y-nino-sub000/web"
)

type CampaignRequest struct {
	Nome  string `json:"nome" binding:"required"`
	Ativa *bool  `json:"ativa"`
}

// CreateCampaign creates a catalog campaign.
func CreateCampaign(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CampaignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": web.FromBindError(err)})
			return
		}

		ativa := true
		if req.Ativa != nil {
			ativa = *req.Ativa
		}
		campaign := models.Campaign{
			Nome:  req.Nome,
			Slug:  slug.Make(req.Nome),
			Ativa: ativa,
		}
		if err := db.Create(&campaign).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign already exists"})
			return
		}

		c.JSON(http.StatusCreated, campaign)
	}
}

// UpdateCampaign renames a campaign and/or toggles it.
func UpdateCampaign(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		campaignID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID"})
			return
		}

		var campaign models.Campaign
		if err := db.First(&campaign, "id = ?", campaignID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}

		var req struct {
			Nome  *string `json:"nome"`
			Ativa *bool   `json:"ativa"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.Nome != nil {
			updates["nome"] = *req.Nome
			updates["slug"] = slug.Make(*req.Nome)
		}
		if req.Ativa != nil {
			updates["ativa"] = *req.Ativa
		}
		if len(updates) > 0 {
			if err := db.Model(&campaign).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update campaign"})
				return
			}
		}

		c.JSON(http.StatusOK, campaign)
	}
}

// GetCampaigns lists campaigns; ?all=1 includes inactive ones.
func GetCampaigns(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")
		if c.Query("all") == "" {
			query = query.Where("ativa = ?", true)
		}

		var campaigns []models.Campaign
		if err := query.Find(&campaigns).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch campaigns"})
			return
		}
		c.JSON(http.StatusOK, campaigns)
	}
}

// GetCampaignProducts returns one campaign with its active products.
// URL param: /campaigns/:slug/products
func GetCampaignProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var campaign models.Campaign
		err := db.
			Preload("Products", "ativo = ?", true).
			Preload("Products.Sizes").
			Preload("Products.Images").
			First(&campaign, "slug = ?", c.Param("slug")).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch campaign"})
			return
		}

		c.JSON(http.StatusOK, campaign)
	}
}

// DeleteCampaign removes a campaign after clearing its product links.
func DeleteCampaign(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		campaignID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID"})
			return
		}

		var campaign models.Campaign
		if err := db.First(&campaign, "id = ?", campaignID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&campaign).Association("Products").Clear(); err != nil {
				return err
			}
			return tx.Delete(&campaign).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete campaign"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
	}
}
