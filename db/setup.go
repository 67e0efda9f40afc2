package db

import (
	"time"

	"github.com/gramlet-dev/gramlet/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PoolConfig bounds the underlying sql.DB connection pool. Idle connections
// are evicted after ConnMaxIdleTime, matching the original deployment's
// 30 second idle timeout.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxIdleTime: 30 * time.Second,
	}
}

// Connect opens the Postgres connection pool. The returned handle is passed
// to services and middleware explicitly; there is no package-level singleton.
func Connect(dsn string, pool PoolConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()

	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	return gdb, nil
}

// Close releases the connection pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()

	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func Migrate(gdb *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Hashtag{},
		&models.PostHashtag{},
		&models.Follow{},
		&models.PostLike{},
		&models.CommentLike{},
		&models.SavedPost{},
	}

	migrator := gdb.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := gdb.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
