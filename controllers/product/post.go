package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/guimac3do/chica-y-nino-sub000/models"
	"github.com/guimac3do/chica-y-nino-sub000/web"
)

type SizeInput struct {
	Tamanho string  `json:"tamanho" binding:"required"`
	Preco   float64 `json:"preco" binding:"required,gt=0"`
}

type CreateProductRequest struct {
	Nome        string      `json:"nome" binding:"required"`
	Descricao   string      `json:"descricao"`
	Ativo       *bool       `json:"ativo"`
	Sizes       []SizeInput `json:"sizes" binding:"required,min=1,dive"`
	CampaignIDs []uint      `json:"campaign_ids"`
}

// CreateProduct creates a product with its sizes and campaign links in one
// transaction. Images are attached afterwards through the upload endpoint.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": web.FromBindError(err)})
			return
		}

		var campaigns []models.Campaign
		if len(req.CampaignIDs) > 0 {
			if err := db.Where("id IN ?", req.CampaignIDs).Find(&campaigns).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch campaigns"})
				return
			}
			if len(campaigns) != len(req.CampaignIDs) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "One or more campaigns do not exist"})
				return
			}
		}

		ativo := true
		if req.Ativo != nil {
			ativo = *req.Ativo
		}

		productSlug, err := uniqueSlug(db, req.Nome)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		product := models.Product{
			Nome:      req.Nome,
			Slug:      productSlug,
			Descricao: req.Descricao,
			Ativo:     ativo,
			Campaigns: campaigns,
		}
		for _, s := range req.Sizes {
			product.Sizes = append(product.Sizes, models.ProductSize{
				Tamanho: s.Tamanho,
				Preco:   s.Preco,
			})
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&product).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// uniqueSlug derives a URL slug from the name, suffixing a counter on
// collision.
func uniqueSlug(db *gorm.DB, nome string) (string, error) {
	base := slug.Make(nome)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := db.Model(&models.Product{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}
