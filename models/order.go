package models

import "time"

type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
	Name      string    `json:"name" validate:"required"`
	Phone     string    `json:"phone" validate:"required"`
	Email     string    `json:"email,omitempty" gorm:"default:null" validate:"omitempty,email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
}
