package models

import "time"

type ProductImage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ImageURL     string `gorm:"size:500;not null" json:"image_url"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
}
