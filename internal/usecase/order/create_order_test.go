package order

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/decorabur/decora-api/internal/audit"
	dbpkg "github.com/decorabur/decora-api/internal/db"
	"github.com/decorabur/decora-api/internal/httperr"
	"github.com/decorabur/decora-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func newUsecase(db *gorm.DB) *CreateOrder {
	return NewCreateOrder(db, audit.NewDispatcher(audit.New(db)))
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()

	p := models.Product{Name: name, Price: &price, StockQuantity: stock, IsActive: true}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	uc := newUsecase(db)

	rideau := seedProduct(t, db, "Rideau Velours", 89.99, 10)
	voilage := seedProduct(t, db, "Voilage Organza", 45.99, 5)

	orderID, err := uc.Execute(context.Background(), 1, Input{
		Items: []ItemInput{
			{ProductID: rideau.ID, Quantity: 2},
			{ProductID: voilage.ID, Quantity: 1},
		},
		ShippingAddress: "12 rue des Lilas, Paris",
	})
	require.NoError(t, err)
	require.NotZero(t, orderID)

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 2*89.99+45.99, order.TotalAmount, 0.001)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", orderID).Find(&items).Error)
	assert.Len(t, items, 2)

	var got models.Product
	require.NoError(t, db.First(&got, rideau.ID).Error)
	assert.Equal(t, 8, got.StockQuantity)

	var got2 models.Product
	require.NoError(t, db.First(&got2, voilage.ID).Error)
	assert.Equal(t, 4, got2.StockQuantity)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	uc := newUsecase(db)

	rideau := seedProduct(t, db, "Rideau Velours", 89.99, 10)
	voilage := seedProduct(t, db, "Voilage Organza", 45.99, 1)

	_, err := uc.Execute(context.Background(), 1, Input{
		Items: []ItemInput{
			{ProductID: rideau.ID, Quantity: 2},
			{ProductID: voilage.ID, Quantity: 3},
		},
		ShippingAddress: "12 rue des Lilas, Paris",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, fmt.Sprintf("product_%d_unavailable", voilage.ID)))

	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)

	var got models.Product
	require.NoError(t, db.First(&got, rideau.ID).Error)
	assert.Equal(t, 10, got.StockQuantity)
}

func TestCreateOrderSumsDuplicateLinesAgainstStock(t *testing.T) {
	db := newTestDB(t)
	uc := newUsecase(db)

	rideau := seedProduct(t, db, "Rideau Velours", 89.99, 4)

	_, err := uc.Execute(context.Background(), 1, Input{
		Items: []ItemInput{
			{ProductID: rideau.ID, Quantity: 3},
			{ProductID: rideau.ID, Quantity: 3},
		},
		ShippingAddress: "12 rue des Lilas, Paris",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, fmt.Sprintf("product_%d_unavailable", rideau.ID)))

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount)

	var got models.Product
	require.NoError(t, db.First(&got, rideau.ID).Error)
	assert.Equal(t, 4, got.StockQuantity)
}

func TestCreateOrderAcceptsDuplicateLinesWithinStock(t *testing.T) {
	db := newTestDB(t)
	uc := newUsecase(db)

	rideau := seedProduct(t, db, "Rideau Velours", 89.99, 6)

	orderID, err := uc.Execute(context.Background(), 1, Input{
		Items: []ItemInput{
			{ProductID: rideau.ID, Quantity: 3},
			{ProductID: rideau.ID, Quantity: 3},
		},
		ShippingAddress: "12 rue des Lilas, Paris",
	})
	require.NoError(t, err)

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.InDelta(t, 6*89.99, order.TotalAmount, 0.001)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", orderID).Find(&items).Error)
	assert.Len(t, items, 2)

	var got models.Product
	require.NoError(t, db.First(&got, rideau.ID).Error)
	assert.Equal(t, 0, got.StockQuantity)
}

func TestCreateOrderRejectsInactiveProduct(t *testing.T) {
	db := newTestDB(t)
	uc := newUsecase(db)

	p := seedProduct(t, db, "Store Vénitien", 120, 5)
	require.NoError(t, db.Model(&p).Update("is_active", false).Error)

	_, err := uc.Execute(context.Background(), 1, Input{
		Items:           []ItemInput{{ProductID: p.ID, Quantity: 1}},
		ShippingAddress: "12 rue des Lilas, Paris",
	})
	assert.True(t, httperr.IsBusiness(err, fmt.Sprintf("product_%d_unavailable", p.ID)))
}

func TestCreateOrderRejectsQuoteOnlyProduct(t *testing.T) {
	db := newTestDB(t)
	uc := newUsecase(db)

	// No price: the item exists for quote requests, not the order flow.
	p := models.Product{Name: "Table sur mesure", StockQuantity: 5, IsActive: true}
	require.NoError(t, db.Create(&p).Error)

	_, err := uc.Execute(context.Background(), 1, Input{
		Items:           []ItemInput{{ProductID: p.ID, Quantity: 1}},
		ShippingAddress: "12 rue des Lilas, Paris",
	})
	assert.True(t, httperr.IsBusiness(err, fmt.Sprintf("product_%d_unavailable", p.ID)))
}
