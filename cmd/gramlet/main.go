package main

import (
	"context"
	"log"

	"github.com/gramlet-dev/gramlet/db"
	"github.com/gramlet-dev/gramlet/internal/auth"
	"github.com/gramlet-dev/gramlet/internal/config"
	"github.com/gramlet-dev/gramlet/internal/router"
	"github.com/gramlet-dev/gramlet/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg := config.Load()

	if err := auth.InitJWT(cfg.JWTSecret, cfg.JWTExpire); err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	gdb, err := db.Connect(cfg.DatabaseURL, db.DefaultPoolConfig())

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var uploader storage.Uploader

	if cfg.S3Bucket != "" {
		s3Uploader, err := storage.NewS3Uploader(context.Background(), storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})

		if err != nil {
			log.Fatalf("Failed to initialize upload storage: %v", err)
		}

		uploader = s3Uploader
	} else {
		log.Println("S3_BUCKET not set, avatar uploads are disabled")
	}

	r := router.New(gdb, uploader)

	log.Printf("Starting gramlet on port %s", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
