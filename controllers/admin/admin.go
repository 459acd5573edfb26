package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/guimac3do/chica-y-nino-sub000/logger"
	"github.com/guimac3do/chica-y-nino-sub000/models"
	"github.com/guimac3do/chica-y-nino-sub000/web"
)

type CreateAdminRequest struct {
	Email string `json:"email" binding:"required,email"`
	Nome  string `json:"nome" binding:"required"`
}

func GetAllAdmins(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var admins []models.Admin
		if err := db.Find(&admins).Error; err != nil {
			logger.FromCtx(c.Request.Context()).Error("failed to fetch admins", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admins"})
			return
		}

		c.JSON(http.StatusOK, admins)
	}
}

// CreateAdmin registers a back-office operator; new operators start
// unapproved.
func CreateAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAdminRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": web.FromBindError(err)})
			return
		}

		admin := models.Admin{Email: req.Email, Nome: req.Nome}
		if err := db.Create(&admin).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Admin already exists"})
			return
		}

		c.JSON(http.StatusCreated, admin)
	}
}

// ApproveAdmin flips the approval flag for an operator.
func ApproveAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Model(&models.Admin{}).Where("id = ?", c.Param("id")).Update("approved", true)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve admin"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Admin approved"})
	}
}
