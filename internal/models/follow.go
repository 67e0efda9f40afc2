package models

import "time"

type Follow struct {
	ID          uint `gorm:"primarykey"`
	FollowerID  uint `gorm:"not null;uniqueIndex:idx_follows_pair"`
	FollowingID uint `gorm:"not null;uniqueIndex:idx_follows_pair;index"`
	CreatedAt   time.Time
}
