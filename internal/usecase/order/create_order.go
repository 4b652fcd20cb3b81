package order

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/decorabur/decora-api/internal/audit"
	"github.com/decorabur/decora-api/internal/httperr"
	"github.com/decorabur/decora-api/internal/models"
)

type ItemInput struct {
	ProductID uint `json:"product_id" binding:"required,min=1"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type Input struct {
	Items           []ItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string      `json:"shipping_address" binding:"required"`
	BillingAddress  string      `json:"billing_address"`
	Notes           string      `json:"notes"`
}

type CreateOrder struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCreateOrder(db *gorm.DB, audit *audit.Dispatcher) *CreateOrder {
	return &CreateOrder{db: db, audit: audit}
}

// Execute creates the order, its items and the stock decrements as one
// transaction. A stock shortfall or any write failure rolls everything back.
func (uc *CreateOrder) Execute(ctx context.Context, userID uint, in Input) (uint, error) {
	var orderID uint

	err := uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(in.Items))
		for _, item := range in.Items {
			ids = append(ids, item.ProductID)
		}

		var products []models.Product
		if err := tx.Where("id IN ? AND is_active = ?", ids, true).
			Find(&products).Error; err != nil {
			return err
		}

		byID := make(map[uint]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		// The same product can appear on several lines. Availability is
		// checked against the summed quantity, not per line.
		needed := make(map[uint]int, len(in.Items))
		for _, item := range in.Items {
			needed[item.ProductID] += item.Quantity
		}

		var total float64
		for _, item := range in.Items {
			p, ok := byID[item.ProductID]
			if !ok || p.StockQuantity < needed[item.ProductID] || p.Price == nil {
				return httperr.ErrBusiness(fmt.Sprintf("product_%d_unavailable", item.ProductID))
			}
			total += *p.Price * float64(item.Quantity)
		}

		order := models.Order{
			UserID:          &userID,
			TotalAmount:     total,
			Status:          models.OrderStatusPending,
			ShippingAddress: in.ShippingAddress,
			BillingAddress:  in.BillingAddress,
			Notes:           in.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range in.Items {
			p := byID[item.ProductID]
			line := models.OrderItem{
				OrderID:    order.ID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitPrice:  *p.Price,
				TotalPrice: *p.Price * float64(item.Quantity),
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}

			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "order_created",
		Entity:   "order",
		EntityID: &orderID,
	})

	return orderID, nil
}
