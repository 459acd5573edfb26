package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/guimac3do/chica-y-nino-sub000/logger"
	"github.com/guimac3do/chica-y-nino-sub000/middleware"
	"github.com/guimac3do/chica-y-nino-sub000/models"
	"github.com/guimac3do/chica-y-nino-sub000/web"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID     uint   `json:"product_id" binding:"required"`
	ProductSizeID uint   `json:"product_size_id" binding:"required"`
	Quantidade    int    `json:"quantidade" binding:"required,min=1"`
	Cor           string `json:"cor" binding:"omitempty,max=255"`
}

type PlaceOrderRequest struct {
	Items       []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	Telefone    string           `json:"telefone" binding:"required,max=20"`
	Observacoes string           `json:"observacoes"`
}

// Generate unique order reference
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Handlers --------

// PlaceOrderHandler creates an order with its line items in one transaction.
// The submitted item list is trusted as-is (the client mirrors its local
// cart); the server-side cart is not consumed. Every item is validated
// against the catalog before any row is written, and a failure on any insert
// rolls back the whole batch. No idempotency: resubmitting creates a second
// order. Prices are not snapshotted onto the items.
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": web.FromBindError(err)})
			return
		}

		// Referential validation: every (product, size) pair must exist
		// before anything is written.
		fe := web.FieldErrors{}
		for i, item := range req.Items {
			var size models.ProductSize
			err := db.
				Joins("JOIN products ON products.id = product_sizes.product_id AND products.deleted_at IS NULL").
				Where("product_sizes.id = ? AND product_sizes.product_id = ?", item.ProductSizeID, item.ProductID).
				First(&size).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fe.Add(fmt.Sprintf("items[%d].product_size_id", i), "product size does not exist")
				continue
			}
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate order items"})
				return
			}
		}
		if fe.HasErrors() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fe})
			return
		}

		order := models.Order{
			OrderRef:    generateOrderRef(),
			CustomerID:  &customerID,
			Telefone:    req.Telefone,
			Observacoes: req.Observacoes,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			items := make([]models.OrderItem, 0, len(req.Items))
			for _, item := range req.Items {
				items = append(items, models.OrderItem{
					OrderID:         order.ID,
					ProductID:       item.ProductID,
					ProductSizeID:   item.ProductSizeID,
					Quantidade:      item.Quantidade,
					Cor:             item.Cor,
					StatusPagamento: models.PaymentPending,
					StatusEstoque:   models.StockPending,
				})
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
			order.Items = items
			return nil
		})
		if err != nil {
			logger.FromCtx(c.Request.Context()).Error("order creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order: " + err.Error()})
			return
		}

		broadcastNewOrder(order)
		c.JSON(http.StatusCreated, gin.H{"message": "Pedido realizado com sucesso", "order_id": order.ID})
	}
}

// GetCustomerOrderHandler returns one order to its owning customer with the
// derived total and aggregate status. Ownership lives in the lookup
// predicate: another customer's order id yields a plain 404.
func GetCustomerOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orderID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var order models.Order
		err = db.
			Preload("Items").
			Preload("Items.Product").
			Preload("Items.Product.Images").
			Preload("Items.Size").
			Where("id = ? AND customer_id = ?", orderID, customerID).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, buildCustomerOrderView(order))
	}
}

// CancelOrderHandler sets every line item of the order to payment status
// "cancelled". There is no stock or financial reversal; calling it again is
// a no-op that still succeeds.
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orderID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var order models.Order
		if err := db.Where("id = ? AND customer_id = ?", orderID, customerID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		if err := db.Model(&models.OrderItem{}).
			Where("order_id = ?", order.ID).
			Update("status_pagamento", models.PaymentCancelled).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Pedido cancelado"})
	}
}

// CancelOrderItemHandler cancels a single line item of the caller's order.
func CancelOrderItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orderID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}
		itemID, err := strconv.Atoi(c.Param("itemId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
			return
		}

		var order models.Order
		if err := db.Where("id = ? AND customer_id = ?", orderID, customerID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		result := db.Model(&models.OrderItem{}).
			Where("id = ? AND order_id = ?", itemID, order.ID).
			Update("status_pagamento", models.PaymentCancelled)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item cancelado"})
	}
}
