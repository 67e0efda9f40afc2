package config

import (
	"log"
	"os"
	"time"
)

// Config holds everything read from the environment at startup.
type Config struct {
	DatabaseURL string
	Port        string
	JWTSecret   string
	JWTExpire   time.Duration

	// Avatar upload storage. Uploads are disabled when Bucket is empty.
	S3Bucket    string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

func Load() *Config {
	return &Config{
		DatabaseURL: getEnvRequired("DATABASE_URL"),
		Port:        getEnv("PORT", "3000"),
		JWTSecret:   getEnvRequired("JWT_SECRET"),
		JWTExpire:   parseDuration(getEnv("JWT_EXPIRE", "168h"), 168*time.Hour),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("%s environment variable is not set", key)
	}
	return value
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
