package models

import "time"

// Post rows are hard-deleted so the database cascades take the junction
// rows (likes, saves, comments, hashtag links) with them.
type Post struct {
	ID        uint `gorm:"primarykey"`
	UserID    uint `gorm:"not null;index"`
	Caption   string
	ImageURL  string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	Owner    User          `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Comments []Comment     `gorm:"foreignKey:PostID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Likes    []PostLike    `gorm:"foreignKey:PostID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Saves    []SavedPost   `gorm:"foreignKey:PostID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tags     []PostHashtag `gorm:"foreignKey:PostID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
