package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Body      string    `json:"body"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
