package models

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `json:"title" validate:"required"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Products  []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"` // One-to-many relationship
}
