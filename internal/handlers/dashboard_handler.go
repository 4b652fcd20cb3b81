package handlers

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	dbpkg "github.com/decorabur/decora-api/internal/db"
	"github.com/decorabur/decora-api/internal/httperr"
	"github.com/decorabur/decora-api/internal/models"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

type DashboardStats struct {
	TotalProducts   int64 `json:"total_products"`
	TotalCategories int64 `json:"total_categories"`
	TotalOrders     int64 `json:"total_orders"`
	TotalCustomers  int64 `json:"total_customers"`
	PendingOrders   int64 `json:"pending_orders"`
}

// Stats fans the five counts out concurrently and joins before replying.
func (h *DashboardHandler) Stats(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		httperr.InternalErr(c, "failed_to_load_stats", "Erreur serveur", err)
		return
	}
	dialect := h.db.Dialector.Name()

	var stats DashboardStats
	g, ctx := errgroup.WithContext(c.Request.Context())

	g.Go(count(ctx, sqlDB, dialect, "SELECT COUNT(*) FROM products", &stats.TotalProducts))
	g.Go(count(ctx, sqlDB, dialect, "SELECT COUNT(*) FROM categories", &stats.TotalCategories))
	g.Go(count(ctx, sqlDB, dialect, "SELECT COUNT(*) FROM orders", &stats.TotalOrders))
	g.Go(count(ctx, sqlDB, dialect,
		"SELECT COUNT(*) FROM users WHERE role = ?", &stats.TotalCustomers, models.RoleCustomer))
	g.Go(count(ctx, sqlDB, dialect,
		"SELECT COUNT(*) FROM orders WHERE status = ?", &stats.PendingOrders, models.OrderStatusPending))

	if err := g.Wait(); err != nil {
		httperr.InternalErr(c, "failed_to_load_stats", "Erreur serveur", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func count(ctx context.Context, sqlDB *sql.DB, dialect, query string, dst *int64, args ...interface{}) func() error {
	return func() error {
		return sqlDB.QueryRowContext(ctx, dbpkg.Rebind(dialect, query), args...).Scan(dst)
	}
}
