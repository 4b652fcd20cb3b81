package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	ServerPort string

	// DatabaseURL set -> hosted Postgres; empty -> embedded SQLite at SQLitePath.
	DatabaseURL string
	SQLitePath  string

	JWTSecret string

	FrontendURLs  []string
	PublicBaseURL string

	UploadDir string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	RedisAddr string

	SMTPHost    string
	SMTPPort    string
	SMTPUser    string
	SMTPPass    string
	NotifyEmail string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:        getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "3002"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "decora.db"),

		JWTSecret: getEnv("JWT_SECRET", "changeme"),

		FrontendURLs:  splitOrigins(getEnv("FRONTEND_URL", "http://localhost:5173,http://localhost:3000,http://localhost:3001")),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "decora-images"),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",

		RedisAddr: getEnv("REDIS_ADDR", ""),

		SMTPHost:    getEnv("SMTP_HOST", ""),
		SMTPPort:    getEnv("SMTP_PORT", "587"),
		SMTPUser:    getEnv("SMTP_USER", ""),
		SMTPPass:    getEnv("SMTP_PASS", ""),
		NotifyEmail: getEnv("NOTIFY_EMAIL", "decora.bur@gmail.com"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, strings.TrimSuffix(p, "/"))
		}
	}
	return origins
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
