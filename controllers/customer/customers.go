package customerControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/guimac3do/chica-y-nino-sub000/middleware"
	"github.com/guimac3do/chica-y-nino-sub000/models"
)

type UpdateCustomerInput struct {
	Nome     *string `json:"nome"`
	Telefone *string `json:"telefone" binding:"omitempty,max=20"`
}

// GET /me
func GetMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var customer models.Customer
		if err := db.First(&customer, "id = ?", customerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}

		c.JSON(http.StatusOK, customer)
	}
}

// PUT /me
func UpdateMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var customer models.Customer
		if err := db.First(&customer, "id = ?", customerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}

		var input UpdateCustomerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Nome != nil {
			updates["nome"] = *input.Nome
		}
		if input.Telefone != nil {
			updates["telefone"] = *input.Telefone
		}

		if len(updates) > 0 {
			if err := db.Model(&customer).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
				return
			}
		}

		c.JSON(http.StatusOK, customer)
	}
}

// GET /admin/customers
func GetAllCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customers []models.Customer
		err := db.
			Select("id", "nome", "email", "telefone", "created_at").
			Order("created_at desc").
			Find(&customers).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}

		c.JSON(http.StatusOK, customers)
	}
}
