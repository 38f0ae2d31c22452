package models

import "time"

type Product struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name" validate:"required"`
	Price        float64   `json:"price" validate:"required,gt=0"`
	Discount     float64   `json:"discount" validate:"gte=0,lte=100"`
	Amount       int       `gorm:"not null;default:0" json:"amount" validate:"gte=0"` // Stock on hand, never negative
	Image        string    `json:"image"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	CategoryID   uint      `json:"category_id" validate:"required"`        // Foreign key to Category
	Category     Category  `gorm:"foreignKey:CategoryID" json:"category" validate:"-"` // Belongs to one Category

	// Populated by catalog queries from the comments table, not a stored column.
	// Nil when the product has no comments.
	AvgRating *float64 `gorm:"->;-:migration" json:"avg_rating"`
}
