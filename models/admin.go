package models

type Admin struct {
	ID       uint   `gorm:"primaryKey"`
	Email    string `gorm:"unique"`
	Nome     string
	Approved bool
}
