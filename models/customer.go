package models

import "time"

type Customer struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Nome         string    `gorm:"not null" json:"nome"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Telefone     string    `gorm:"size:20" json:"telefone"`
	Cart         *Cart     `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"cart,omitempty"`
	Orders       []Order   `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
