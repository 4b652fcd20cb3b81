package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/decorabur/decora-api/internal/audit"
	"github.com/decorabur/decora-api/internal/cache"
	"github.com/decorabur/decora-api/internal/config"
	"github.com/decorabur/decora-api/internal/handlers"
	"github.com/decorabur/decora-api/internal/httperr"
	infraRepo "github.com/decorabur/decora-api/internal/infra/repository"
	"github.com/decorabur/decora-api/internal/mailer"
	"github.com/decorabur/decora-api/internal/middleware"
	"github.com/decorabur/decora-api/internal/storage"
	ucCatalog "github.com/decorabur/decora-api/internal/usecase/catalog"
	ucOrder "github.com/decorabur/decora-api/internal/usecase/order"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	store storage.Store,
	treeCache *cache.TreeCache,
	m *mailer.Mailer,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg))

	httperr.SetVerbose(cfg.IsDevelopment())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	catalogRepo := infraRepo.NewCatalogGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	deleteCategoryUC := ucCatalog.NewDeleteCategoryTree(
		catalogRepo,
		auditDispatcher,
	)

	createOrderUC := ucOrder.NewCreateOrder(db, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	categoryHandler := handlers.NewCategoryHandler(db, catalogRepo, deleteCategoryUC, treeCache)
	productHandler := handlers.NewProductHandler(db, cfg.PublicBaseURL)

	orderHandler := handlers.NewOrderHandler(db, createOrderUC)
	quoteHandler := handlers.NewQuoteHandler(db, cfg, m)
	contactHandler := handlers.NewContactHandler(db, m)

	dashboardHandler := handlers.NewDashboardHandler(db)
	adminProductHandler := handlers.NewAdminProductHandler(db, store, auditDispatcher, cfg.PublicBaseURL)
	adminCategoryHandler := handlers.NewAdminCategoryHandler(db, store, auditDispatcher, treeCache)
	adminOrderHandler := handlers.NewAdminOrderHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// STATIC UPLOADS
	// ======================================================
	if cfg.MinioEndpoint == "" {
		uploads := r.Group("/uploads", func(c *gin.Context) {
			c.Header("Cross-Origin-Resource-Policy", "cross-origin")
		})
		uploads.Static("/", cfg.UploadDir)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// ------------------------------
		// CATALOGUE PUBLIC
		// ------------------------------
		api.GET("/products", productHandler.List)
		api.GET("/products/:id", productHandler.Get)
		api.GET("/products/category/:categoryId", productHandler.ListByCategory)
		api.POST("/products", productHandler.Create)
		api.PUT("/products/:id", productHandler.Update)
		api.DELETE("/products/:id", productHandler.Delete)

		api.GET("/categories", categoryHandler.List)
		api.GET("/categories/tree", categoryHandler.Tree)
		api.GET("/categories/:id", categoryHandler.Get)
		api.POST("/categories", categoryHandler.Create)
		api.PUT("/categories/:id", categoryHandler.Update)
		api.DELETE("/categories/:id", categoryHandler.Delete)

		// ------------------------------
		// DEVIS & CONTACT
		// ------------------------------
		api.POST("/quotes", quoteHandler.Create)

		// Submission is public; the listing and status routes on the same
		// path are reserved for the back office.
		api.POST("/contact", contactHandler.Create)
		api.GET("/contact", middleware.AuthMiddleware(cfg), middleware.RequireAdmin(), contactHandler.List)
		api.PUT("/contact/:id", middleware.AuthMiddleware(cfg), middleware.RequireAdmin(), contactHandler.UpdateStatus)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVEE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/auth/me", authHandler.Me)

			secured.GET("/orders", orderHandler.List)
			secured.GET("/orders/:id", orderHandler.Get)
			secured.POST("/orders", orderHandler.Create)
		}

		// ------------------------------
		// BACK OFFICE
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireAdmin())
		{
			admin.GET("/dashboard", dashboardHandler.Stats)

			admin.GET("/products", adminProductHandler.List)
			admin.POST("/products", adminProductHandler.Create)
			admin.PUT("/products/:id", adminProductHandler.Update)
			admin.DELETE("/products/:id", adminProductHandler.Delete)
			admin.PUT("/products/:id/visibility", adminProductHandler.SetVisibility)

			admin.POST("/categories", adminCategoryHandler.Create)
			admin.PUT("/categories/:id", adminCategoryHandler.Update)
			admin.DELETE("/categories/:id", categoryHandler.Delete)

			admin.GET("/orders", adminOrderHandler.List)
			admin.PUT("/orders/:id/status", adminOrderHandler.UpdateStatus)

			admin.GET("/quotes", quoteHandler.List)
			admin.PUT("/quotes/:id", quoteHandler.UpdateStatus)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
