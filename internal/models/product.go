package models

import "time"

// Price and CategoryID are nullable: quote-only items have no direct sale price.
type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string   `gorm:"size:150;not null" json:"name"`
	Description string   `gorm:"size:2000" json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *uint    `gorm:"index" json:"category_id"`

	ImageURL      string `gorm:"size:500" json:"image_url"`
	StockQuantity int    `gorm:"default:0" json:"stock_quantity"`
	Dimensions    string `gorm:"size:255" json:"dimensions"`
	Materials     string `gorm:"size:255" json:"materials"`

	// false = soft-deleted, hidden from the public catalog but kept for admin.
	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
