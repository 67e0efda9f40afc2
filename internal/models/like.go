package models

import "time"

type PostLike struct {
	ID        uint `gorm:"primarykey"`
	PostID    uint `gorm:"not null;uniqueIndex:idx_post_likes_pair"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_post_likes_pair"`
	CreatedAt time.Time
}

type CommentLike struct {
	ID        uint `gorm:"primarykey"`
	CommentID uint `gorm:"not null;uniqueIndex:idx_comment_likes_pair"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_comment_likes_pair"`
	CreatedAt time.Time
}
