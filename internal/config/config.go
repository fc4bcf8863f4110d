package config

import (
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	StorageLocal = "local"
	StorageR2    = "r2"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

type Config struct {
	AppEnv   string
	LogLevel string

	ServerPort  string
	CORSOrigins []string

	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string

	UploadDir         string
	MaxUploadBytes    int64
	PhotoStorage      string
	PhotoMaxDimension int

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	maxUploadBytes, err := strconv.ParseInt(os.Getenv("MAX_UPLOAD_BYTES"), 10, 64)
	if err != nil || maxUploadBytes <= 0 {
		maxUploadBytes = 16 * 1024 * 1024
	}

	photoMaxDimension, err := strconv.Atoi(os.Getenv("PHOTO_MAX_DIMENSION"))
	if err != nil || photoMaxDimension < 0 {
		photoMaxDimension = 0
	}

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),

		ServerPort:  getEnv("SERVER_PORT", "5000"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		DBDriver:   getEnv("DB_DRIVER", DriverSQLite),
		DBPath:     getEnv("DB_PATH", "filmix.db"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		UploadDir:         getEnv("UPLOAD_DIR", "uploads/profile_photos"),
		MaxUploadBytes:    maxUploadBytes,
		PhotoStorage:      getEnv("PHOTO_STORAGE", StorageLocal),
		PhotoMaxDimension: photoMaxDimension,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}

	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}

	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH must be set for sqlite3")
		}
	case DriverPostgres:
		if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST, DB_USER and DB_NAME must be set for postgres")
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER %q", c.DBDriver)
	}

	switch c.PhotoStorage {
	case StorageLocal:
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR must be set for local photo storage")
		}
	case StorageR2:
		if c.R2AccountID == "" || c.R2AccessKeyID == "" || c.R2SecretAccessKey == "" || c.R2BucketName == "" {
			return fmt.Errorf("missing Cloudflare R2 configuration")
		}
	default:
		return fmt.Errorf("invalid PHOTO_STORAGE %q", c.PhotoStorage)
	}

	return nil
}

// IsProduction reports whether logs should be emitted as JSON.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
