package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/decorabur/decora-api/internal/cache"
	"github.com/decorabur/decora-api/internal/config"
	dbpkg "github.com/decorabur/decora-api/internal/db"
	"github.com/decorabur/decora-api/internal/mailer"
	"github.com/decorabur/decora-api/internal/routes"
	"github.com/decorabur/decora-api/internal/storage"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var store storage.Store
	if cfg.MinioEndpoint != "" {
		minioStore, err := storage.NewMinioStore(
			cfg.MinioEndpoint,
			cfg.MinioAccessKey,
			cfg.MinioSecretKey,
			cfg.MinioBucket,
			cfg.MinioUseSSL,
		)
		if err != nil {
			log.Fatalf("failed to init object storage: %v", err)
		}
		store = minioStore
	} else {
		diskStore, err := storage.NewDiskStore(cfg.UploadDir)
		if err != nil {
			log.Fatalf("failed to init upload dir: %v", err)
		}
		store = diskStore
	}

	treeCache := cache.NewTreeCache(cfg.RedisAddr)
	m := mailer.New(cfg)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	routes.RegisterRoutes(r, db, cfg, store, treeCache, m)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
