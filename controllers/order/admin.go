package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/guimac3do/chica-y-nino-sub000/models"
)

// itemParams parses the numeric order and item ids out of the URL.
func itemParams(c *gin.Context) (int, int, error) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, 0, errors.New("Invalid order ID")
	}
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		return 0, 0, errors.New("Invalid item ID")
	}
	return orderID, itemID, nil
}

type UpdateItemStatusRequest struct {
	StatusPagamento *string `json:"status_pagamento"`
	StatusEstoque   *string `json:"status_estoque"`
}

// Transition policies applied by UpdateItemStatusHandler. The defaults
// accept any transition; replace them to enforce a stricter table.
var (
	paymentPolicy = models.AllowAnyPaymentTransition
	stockPolicy   = models.AllowAnyStockTransition
)

// GetOrderAdminHandler returns the full back-office view of one order.
func GetOrderAdminHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var order models.Order
		err = db.
			Preload("Customer").
			Preload("Items").
			Preload("Items.Product").
			Preload("Items.Product.Images").
			Preload("Items.Size").
			First(&order, "id = ?", orderID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, buildAdminOrderView(order))
	}
}

// ListOrdersHandler returns all orders, newest first.
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		err := db.
			Preload("Customer").
			Preload("Items").
			Preload("Items.Product").
			Preload("Items.Product.Images").
			Preload("Items.Size").
			Order("created_at DESC").
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		views := make([]AdminOrderView, 0, len(orders))
		for _, order := range orders {
			views = append(views, buildAdminOrderView(order))
		}
		c.JSON(http.StatusOK, views)
	}
}

// UpdateItemStatusHandler sparsely updates the payment and/or stock status
// of one line item; absent fields are left untouched.
func UpdateItemStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, itemID, err := itemParams(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var req UpdateItemStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.StatusPagamento == nil && req.StatusEstoque == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No status fields to update"})
			return
		}

		var item models.OrderItem
		err = db.Where("id = ? AND order_id = ?", itemID, orderID).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{}
		if req.StatusPagamento != nil {
			status, err := models.ParsePaymentStatus(*req.StatusPagamento)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := paymentPolicy(item.StatusPagamento, status); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["status_pagamento"] = status
		}
		if req.StatusEstoque != nil {
			status, err := models.ParseStockStatus(*req.StatusEstoque)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := stockPolicy(item.StatusEstoque, status); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["status_estoque"] = status
		}

		if err := db.Model(&item).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item status"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Status atualizado"})
	}
}

// SendReminderHandler bumps the payment-reminder counter of an order.
func SendReminderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		result := db.Model(&models.Order{}).
			Where("id = ?", orderID).
			UpdateColumn("lembretes", gorm.Expr("lembretes + 1"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record reminder"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Lembrete registrado"})
	}
}

// MarkItemProcessedHandler flags a line item as handled by the fulfilment
// workflow, stamping the time.
func MarkItemProcessedHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, itemID, err := itemParams(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		result := db.Model(&models.OrderItem{}).
			Where("id = ? AND order_id = ?", itemID, orderID).
			Updates(map[string]interface{}{"processado": true, "processado_at": now})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark item as processed"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item processado"})
	}
}
