package models

import "time"

// Hashtag tags are stored lowercase and are never deleted.
type Hashtag struct {
	ID        uint   `gorm:"primarykey"`
	Tag       string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

type PostHashtag struct {
	ID        uint `gorm:"primarykey"`
	PostID    uint `gorm:"not null;uniqueIndex:idx_post_hashtags_pair"`
	HashtagID uint `gorm:"not null;uniqueIndex:idx_post_hashtags_pair"`

	Hashtag Hashtag `gorm:"foreignKey:HashtagID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
