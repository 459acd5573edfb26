package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/guimac3do/chica-y-nino-sub000/middleware"
	"github.com/guimac3do/chica-y-nino-sub000/models"
	"github.com/guimac3do/chica-y-nino-sub000/web"
)

type AddItemInput struct {
	ProductID     uint   `json:"product_id" binding:"required"`
	ProductSizeID uint   `json:"product_size_id" binding:"required"`
	Quantidade    int    `json:"quantidade" binding:"required,min=1"`
	Cor           string `json:"cor" binding:"omitempty,max=255"`
}

type UpdateItemInput struct {
	ItemID     uint `json:"item_id" binding:"required"`
	Quantidade int  `json:"quantidade" binding:"required,min=1"`
}

type RemoveItemInput struct {
	ItemID uint `json:"item_id" binding:"required"`
}

type CartItemView struct {
	ID            uint    `json:"id"`
	ProductID     uint    `json:"product_id"`
	ProductSizeID uint    `json:"product_size_id"`
	Produto       string  `json:"produto"`
	Tamanho       string  `json:"tamanho"`
	Preco         float64 `json:"preco"`
	Quantidade    int     `json:"quantidade"`
	Cor           string  `json:"cor"`
	Subtotal      float64 `json:"subtotal"`
	Imagem        string  `json:"imagem"`
}

// POST /cart/add
//
// Locate-or-create the caller's cart, then either bump the quantity of the
// matching (product, size, cor) line or insert a new one. The whole sequence
// runs in one transaction so concurrent adds from the same customer cannot
// race the firstOrCreate-then-match-then-write steps into duplicate rows.
func AddItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": web.FromBindError(err)})
			return
		}

		// Validate the variant before touching the cart.
		var size models.ProductSize
		err := db.
			Joins("JOIN products ON products.id = product_sizes.product_id AND products.deleted_at IS NULL").
			Where("product_sizes.id = ? AND product_sizes.product_id = ?", input.ProductSizeID, input.ProductID).
			First(&size).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product size does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var cart models.Cart
			if err := tx.Where("customer_id = ?", customerID).
				FirstOrCreate(&cart, models.Cart{CustomerID: customerID}).Error; err != nil {
				return err
			}

			var item models.CartItem
			err := tx.Where(
				"cart_id = ? AND product_id = ? AND product_size_id = ? AND cor = ?",
				cart.ID, input.ProductID, input.ProductSizeID, input.Cor,
			).First(&item).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				newItem := models.CartItem{
					CartID:        cart.ID,
					ProductID:     input.ProductID,
					ProductSizeID: input.ProductSizeID,
					Cor:           input.Cor,
					Quantidade:    input.Quantidade,
					AddedAt:       time.Now(),
				}
				return tx.Create(&newItem).Error
			}
			if err != nil {
				return err
			}

			// Same tuple again: increment, never a second row.
			return tx.Model(&item).
				UpdateColumn("quantidade", gorm.Expr("quantidade + ?", input.Quantidade)).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item adicionado ao carrinho"})
	}
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		err := db.
			Preload("Items").
			Preload("Items.Product").
			Preload("Items.Product.Images").
			Preload("Items.Size").
			Where("customer_id = ?", customerID).
			First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// No cart yet reads as an empty one.
				c.JSON(http.StatusOK, gin.H{"items": []CartItemView{}, "total": 0.0})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		var total float64
		views := make([]CartItemView, 0, len(cart.Items))
		for _, item := range cart.Items {
			view := CartItemView{
				ID:            item.ID,
				ProductID:     item.ProductID,
				ProductSizeID: item.ProductSizeID,
				Quantidade:    item.Quantidade,
				Cor:           item.Cor,
			}
			if item.Product != nil {
				view.Produto = item.Product.Nome
				view.Imagem = item.Product.ImageFor(item.Cor)
			}
			if item.Size != nil {
				view.Tamanho = item.Size.Tamanho
				view.Preco = item.Size.Preco
			}
			view.Subtotal = view.Preco * float64(item.Quantidade)
			total += view.Subtotal
			views = append(views, view)
		}

		c.JSON(http.StatusOK, gin.H{"items": views, "total": total})
	}
}

// PUT /cart/update
func UpdateItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": web.FromBindError(err)})
			return
		}

		var cart models.Cart
		if err := db.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		result := db.Model(&models.CartItem{}).
			Where("id = ? AND cart_id = ?", input.ItemID, cart.ID).
			Update("quantidade", input.Quantidade)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item atualizado"})
	}
}

// DELETE /cart/remove
func RemoveItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input RemoveItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": web.FromBindError(err)})
			return
		}

		var cart models.Cart
		if err := db.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		result := db.Where("id = ? AND cart_id = ?", input.ItemID, cart.ID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removido"})
	}
}

// DELETE /cart/clear
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		if err := db.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"message": "Carrinho limpo"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Carrinho limpo"})
	}
}
