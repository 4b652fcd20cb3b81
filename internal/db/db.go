package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/decorabur/decora-api/internal/config"
	"github.com/decorabur/decora-api/internal/models"
)

// NewDB binds the process to one backend for its whole lifetime: a hosted
// Postgres when DATABASE_URL is set, the embedded SQLite file otherwise.
// Schema application and seeding failures are fatal since nothing can run
// without them.
func NewDB(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
		log.Println("database: using hosted postgres backend")
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
		log.Printf("database: using embedded sqlite backend at %s", cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := Seed(db); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.Quote{},
		&models.ContactRequest{},
		&models.AuditLog{},
	)
}
