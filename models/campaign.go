package models

import "time"

// Campaign scopes the catalog: products are published into one or more
// campaigns and the storefront browses campaign by campaign.
type Campaign struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Nome      string    `gorm:"unique;not null" json:"nome"`
	Slug      string    `gorm:"uniqueIndex" json:"slug"`
	Ativa     bool      `json:"ativa"`
	Products  []Product `gorm:"many2many:campaign_products" json:"products,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
