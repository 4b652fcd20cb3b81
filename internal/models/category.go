package models

import "time"

// Category name is unique across the whole table, not per branch.
type Category struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`

	// nil = root category. The hierarchy is two levels deep in practice.
	ParentID *uint `gorm:"index" json:"parent_id"`

	ImageURL string `gorm:"size:500" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
