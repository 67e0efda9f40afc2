package models

import "time"

type Comment struct {
	ID        uint   `gorm:"primarykey"`
	PostID    uint   `gorm:"not null;index"`
	UserID    uint   `gorm:"not null;index"`
	Content   string `gorm:"not null"`
	CreatedAt time.Time

	// Relationships
	Author User          `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Likes  []CommentLike `gorm:"foreignKey:CommentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
