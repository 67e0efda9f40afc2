package models

import "time"

type SavedPost struct {
	ID        uint `gorm:"primarykey"`
	PostID    uint `gorm:"not null;uniqueIndex:idx_saved_posts_pair"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_saved_posts_pair"`
	CreatedAt time.Time
}
