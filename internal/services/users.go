package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gramlet-dev/gramlet/internal/models"
	"gorm.io/gorm"
)

type Profile struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Bio           string    `json:"bio"`
	AvatarURL     string    `json:"avatar_url"`
	IsVerified    bool      `json:"is_verified"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProfileUpdate is a partial update; nil fields keep their current value.
type ProfileUpdate struct {
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

type UserStats struct {
	PostsCount     int64 `json:"posts_count"`
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}

type UserService interface {
	Profile(ctx context.Context, userID uint) (*Profile, error)
	UpdateProfile(ctx context.Context, userID uint, input ProfileUpdate) (*Profile, error)
	SetAvatar(ctx context.Context, userID uint, avatarURL string) (*Profile, error)
	Stats(ctx context.Context, userID uint) (*UserStats, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(gdb *gorm.DB) UserService {
	return &userService{db: gdb}
}

func (s *userService) Profile(ctx context.Context, userID uint) (*Profile, error) {
	var user models.User

	err := s.db.WithContext(ctx).First(&user, userID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %d: %w", userID, err)
	}

	return profileOf(&user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, input ProfileUpdate) (*Profile, error) {
	updates := make(map[string]interface{})

	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}

	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}

	if input.AvatarURL != nil {
		updates["avatar_url"] = *input.AvatarURL
	}

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).
			Model(&models.User{}).
			Where("id = ?", userID).
			Updates(updates)

		if result.Error != nil {
			return nil, fmt.Errorf("failed to update user %d: %w", userID, result.Error)
		}

		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	return s.Profile(ctx, userID)
}

func (s *userService) SetAvatar(ctx context.Context, userID uint, avatarURL string) (*Profile, error) {
	url := avatarURL
	return s.UpdateProfile(ctx, userID, ProfileUpdate{AvatarURL: &url})
}

func (s *userService) Stats(ctx context.Context, userID uint) (*UserStats, error) {
	var stats UserStats

	gdb := s.db.WithContext(ctx)

	if err := gdb.Model(&models.Post{}).Where("user_id = ?", userID).Count(&stats.PostsCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	if err := gdb.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&stats.FollowersCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}

	if err := gdb.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&stats.FollowingCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}

	return &stats, nil
}

func profileOf(user *models.User) *Profile {
	return &Profile{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FullName:      user.FullName,
		Bio:           user.Bio,
		AvatarURL:     user.AvatarURL,
		IsVerified:    user.IsVerified,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}
