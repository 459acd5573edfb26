package models

import "time"

type Order struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OrderRef string `gorm:"uniqueIndex" json:"order_ref"`
	// Weak reference: a deleted customer nulls the FK and the order
	// renders with an "unknown" customer instead of disappearing.
	CustomerID  *uint       `gorm:"index" json:"customer_id"`
	Customer    *Customer   `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"customer,omitempty"`
	Telefone    string      `gorm:"size:20;not null" json:"telefone"`
	Observacoes string      `json:"observacoes"`
	Lembretes   int         `json:"lembretes"` // payment reminders sent
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderItem carries its own payment and stock lifecycle. No price snapshot:
// the unit price is resolved from the live ProductSize at read time, so a
// price change after purchase changes the displayed historical total.
type OrderItem struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	OrderID         uint          `gorm:"index" json:"order_id"`
	ProductID       uint          `json:"product_id"`
	Product         *Product      `gorm:"foreignKey:ProductID" json:"-"`
	ProductSizeID   uint          `json:"product_size_id"`
	Size            *ProductSize  `gorm:"foreignKey:ProductSizeID" json:"-"`
	Quantidade      int           `json:"quantidade"`
	Cor             string        `gorm:"size:255" json:"cor"`
	StatusPagamento PaymentStatus `gorm:"type:VARCHAR(20)" json:"status_pagamento"`
	StatusEstoque   StockStatus   `gorm:"type:VARCHAR(20)" json:"status_estoque"`
	Processado      bool          `json:"processado"`
	ProcessadoAt    *time.Time    `json:"processado_at,omitempty"`
}
