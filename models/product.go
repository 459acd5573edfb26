package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Nome        string         `gorm:"not null" json:"nome"`
	Slug        string         `gorm:"uniqueIndex" json:"slug"`
	Descricao   string         `json:"descricao"`
	Ativo       bool           `json:"ativo"`
	Sizes       []ProductSize  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Campaigns   []Campaign     `gorm:"many2many:campaign_products" json:"campaigns,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProductSize is the price-bearing variant: one size label of one product
// with its own price. Cart and order lines reference it as product_size_id.
type ProductSize struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint    `gorm:"index" json:"product_id"`
	Tamanho   string  `gorm:"not null" json:"tamanho"`
	Preco     float64 `gorm:"not null" json:"preco"`
}

// ProductImage is either generic (Cor empty) or bound to a color variant.
// Display picks the color-matching image first, then the first generic one.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index" json:"product_id"`
	Cor       string `gorm:"size:255" json:"cor"`
	URL       string `gorm:"not null" json:"url"`
	ThumbURL  string `json:"thumb_url"`
	Position  int    `json:"position"`
}

// ImageFor returns the display image for a color label, preferring a
// color-specific image over the product's first generic one.
func (p *Product) ImageFor(cor string) string {
	if p == nil {
		return ""
	}
	if cor != "" {
		for _, img := range p.Images {
			if img.Cor != "" && equalFoldTrim(img.Cor, cor) {
				return img.URL
			}
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
