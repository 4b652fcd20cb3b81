package models

import "time"

// Legacy order flow statuses. Quote requests use their own set, see quote.go.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	TotalAmount float64 `gorm:"not null" json:"total_amount"`
	Status      string  `gorm:"size:20;default:'pending'" json:"status"`

	ShippingAddress string `gorm:"size:500" json:"shipping_address"`
	BillingAddress  string `gorm:"size:500" json:"billing_address"`
	Notes           string `gorm:"size:1000" json:"notes"`

	Items []OrderItem `json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OrderID   uint `gorm:"index" json:"order_id"`
	ProductID uint `json:"product_id"`

	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unit_price"`
	TotalPrice float64 `gorm:"not null" json:"total_price"`
}
