package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (token revocation); empty addr disables it
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Photo storage: "s3" or "local"
	PhotoBackend string
	PhotoDir     string
	S3Bucket     string
	AWSRegion    string

	// CORS
	AllowedOrigins []string
}

// LoadConfig reads configuration from environment variables, falling back
// to Docker secrets files for the sensitive values.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getSecret("DB_PASSWORD", "db_password", ""),
		DBName:         getEnv("DB_NAME", "pawtrail"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getSecret("REDIS_PASSWORD", "redis_password", ""),
		RedisDB:        0,
		JWTSecret:      getSecret("JWT_SECRET", "jwt_secret", ""),
		PhotoBackend:   getEnv("PHOTO_BACKEND", "local"),
		PhotoDir:       getEnv("PHOTO_DIR", "storage/photos"),
		S3Bucket:       getEnv("S3_BUCKET_NAME", "pawtrail-pet-photos"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AllowedOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ","),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.PhotoBackend != "s3" && cfg.PhotoBackend != "local" {
		return nil, fmt.Errorf("unknown photo backend %q", cfg.PhotoBackend)
	}

	return cfg, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// getSecret prefers the environment variable and falls back to a Docker
// secret file under SECRETS_DIR.
func getSecret(envName, secretName, fallback string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, secretName)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return fallback
}
