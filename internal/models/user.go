package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Username      string `gorm:"uniqueIndex;not null"`
	Email         string `gorm:"uniqueIndex;not null"`
	PasswordHash  string `gorm:"not null"`
	FullName      string
	Bio           string
	AvatarURL     string
	IsVerified    bool `gorm:"default:false"`
	EmailVerified bool `gorm:"default:false"`

	// Raw profile payload from the OAuth provider, empty for password accounts.
	OAuthData datatypes.JSON

	// Relationships
	Posts     []Post      `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Comments  []Comment   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Following []Follow    `gorm:"foreignKey:FollowerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Followers []Follow    `gorm:"foreignKey:FollowingID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Saved     []SavedPost `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
