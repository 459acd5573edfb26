package models

import "time"

type Cart struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CustomerID uint       `gorm:"uniqueIndex" json:"customer_id"` // Enforces ONE cart per customer
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartItem is deduplicated by (cart, product, size, cor): adding the same
// tuple again increments Quantidade instead of inserting a second row.
type CartItem struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	CartID        uint         `gorm:"index;uniqueIndex:idx_cart_line" json:"cart_id"`
	ProductID     uint         `gorm:"uniqueIndex:idx_cart_line" json:"product_id"`
	Product       *Product     `gorm:"foreignKey:ProductID" json:"-"`
	ProductSizeID uint         `gorm:"uniqueIndex:idx_cart_line" json:"product_size_id"`
	Size          *ProductSize `gorm:"foreignKey:ProductSizeID" json:"-"`
	Cor           string       `gorm:"size:255;uniqueIndex:idx_cart_line" json:"cor"`
	Quantidade    int          `json:"quantidade"`
	AddedAt       time.Time    `json:"added_at"`
}
