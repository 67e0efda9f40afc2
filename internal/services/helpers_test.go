package services

import (
	"testing"

	"github.com/gramlet-dev/gramlet/db"
	"github.com/gramlet-dev/gramlet/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with foreign keys enforced,
// migrated with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}

	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })

	return gdb
}

func createTestUser(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}

	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}

	return &user
}

func createTestPost(t *testing.T, gdb *gorm.DB, userID uint, caption string) *models.Post {
	t.Helper()

	post := models.Post{
		UserID:   userID,
		Caption:  caption,
		ImageURL: "http://example.com/img.jpg",
	}

	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}

	return &post
}
