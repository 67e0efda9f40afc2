package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gramlet-dev/gramlet/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowUser struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	AvatarURL   string `json:"avatar_url"`
	IsFollowing bool   `json:"is_following"`
}

type FollowService interface {
	Follow(ctx context.Context, followerID, targetID uint) error
	Unfollow(ctx context.Context, followerID, targetID uint) error
	Followers(ctx context.Context, userID uint, viewerID *uint, page, limit int) ([]FollowUser, error)
	Following(ctx context.Context, userID uint, viewerID *uint, page, limit int) ([]FollowUser, error)
	IsFollowing(ctx context.Context, viewerID, targetID uint) (bool, error)
}

type followService struct {
	db *gorm.DB
}

func NewFollowService(gdb *gorm.DB) FollowService {
	return &followService{db: gdb}
}

// Follow is idempotent: a duplicate edge hits the unique pair index and is
// dropped by ON CONFLICT DO NOTHING.
func (s *followService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return ErrSelfFollow
	}

	edge := models.Follow{FollowerID: followerID, FollowingID: targetID}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error

	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to follow user %d: %w", targetID, err)
	}

	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, targetID).
		Delete(&models.Follow{}).Error

	if err != nil {
		return fmt.Errorf("failed to unfollow user %d: %w", targetID, err)
	}

	return nil
}

func (s *followService) Followers(ctx context.Context, userID uint, viewerID *uint, page, limit int) ([]FollowUser, error) {
	rows := []FollowUser{}

	err := s.db.WithContext(ctx).
		Table("follows AS f").
		Select(`u.id, u.username, u.full_name, u.avatar_url,
			EXISTS(SELECT 1 FROM follows f2 WHERE f2.follower_id = ? AND f2.following_id = u.id) AS is_following`,
			viewerArg(viewerID)).
		Joins("JOIN users u ON u.id = f.follower_id").
		Where("f.following_id = ?", userID).
		Order("f.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list followers of %d: %w", userID, err)
	}

	return rows, nil
}

func (s *followService) Following(ctx context.Context, userID uint, viewerID *uint, page, limit int) ([]FollowUser, error) {
	rows := []FollowUser{}

	err := s.db.WithContext(ctx).
		Table("follows AS f").
		Select(`u.id, u.username, u.full_name, u.avatar_url,
			EXISTS(SELECT 1 FROM follows f2 WHERE f2.follower_id = ? AND f2.following_id = u.id) AS is_following`,
			viewerArg(viewerID)).
		Joins("JOIN users u ON u.id = f.following_id").
		Where("f.follower_id = ?", userID).
		Order("f.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list following of %d: %w", userID, err)
	}

	return rows, nil
}

func (s *followService) IsFollowing(ctx context.Context, viewerID, targetID uint) (bool, error) {
	var count int64

	err := s.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", viewerID, targetID).
		Count(&count).Error

	if err != nil {
		return false, fmt.Errorf("failed to check follow status: %w", err)
	}

	return count > 0, nil
}
