package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type UserSearchRow struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	AvatarURL      string `json:"avatar_url"`
	Bio            string `json:"bio"`
	IsVerified     bool   `json:"is_verified"`
	FollowersCount int64  `json:"followers_count"`
	IsFollowing    bool   `json:"is_following"`
}

type HashtagRow struct {
	ID         uint   `json:"id"`
	Tag        string `json:"tag"`
	PostsCount int64  `json:"posts_count"`
}

type SearchService interface {
	Users(ctx context.Context, q string, viewerID *uint, page, limit int) ([]UserSearchRow, error)
	Posts(ctx context.Context, q string, page, limit int) ([]PostRow, error)
	Hashtags(ctx context.Context, q string, page, limit int) ([]HashtagRow, error)
	PostsByTag(ctx context.Context, tag string, page, limit int) ([]PostRow, error)
}

type searchService struct {
	db *gorm.DB
}

func NewSearchService(gdb *gorm.DB) SearchService {
	return &searchService{db: gdb}
}

// Users matches a case-insensitive substring of username or full name,
// ordered by follower count. A blank query returns an empty page without
// touching storage.
func (s *searchService) Users(ctx context.Context, q string, viewerID *uint, page, limit int) ([]UserSearchRow, error) {
	rows := []UserSearchRow{}

	term := strings.TrimSpace(q)

	if term == "" {
		return rows, nil
	}

	pattern := "%" + strings.ToLower(term) + "%"

	err := s.db.WithContext(ctx).
		Table("users AS u").
		Select(`u.id, u.username, u.full_name, u.avatar_url, u.bio, u.is_verified,
			(SELECT COUNT(*) FROM follows f WHERE f.following_id = u.id) AS followers_count,
			EXISTS(SELECT 1 FROM follows f2 WHERE f2.follower_id = ? AND f2.following_id = u.id) AS is_following`,
			viewerArg(viewerID)).
		Where("LOWER(u.username) LIKE ? OR LOWER(u.full_name) LIKE ?", pattern, pattern).
		Order("followers_count DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return rows, nil
}

func (s *searchService) Posts(ctx context.Context, q string, page, limit int) ([]PostRow, error) {
	term := strings.TrimSpace(q)

	if term == "" {
		return nil, ErrBlankQuery
	}

	rows := []PostRow{}

	err := postRows(s.db.WithContext(ctx), nil).
		Where("LOWER(p.caption) LIKE ?", "%"+strings.ToLower(term)+"%").
		Order("p.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}

	return rows, nil
}

// Hashtags strips a leading # before matching; tags are stored lowercase.
func (s *searchService) Hashtags(ctx context.Context, q string, page, limit int) ([]HashtagRow, error) {
	term := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(q), "#"))

	if term == "" {
		return nil, ErrBlankQuery
	}

	rows := []HashtagRow{}

	err := s.db.WithContext(ctx).
		Table("hashtags AS h").
		Select(`h.id, h.tag, COUNT(ph.post_id) AS posts_count`).
		Joins("LEFT JOIN post_hashtags ph ON ph.hashtag_id = h.id").
		Where("h.tag LIKE ?", "%"+strings.ToLower(term)+"%").
		Group("h.id, h.tag").
		Order("posts_count DESC, h.tag ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to search hashtags: %w", err)
	}

	return rows, nil
}

func (s *searchService) PostsByTag(ctx context.Context, tag string, page, limit int) ([]PostRow, error) {
	rows := []PostRow{}

	err := postRows(s.db.WithContext(ctx), nil).
		Joins("JOIN post_hashtags ph ON ph.post_id = p.id").
		Joins("JOIN hashtags h ON h.id = ph.hashtag_id").
		Where("h.tag = ?", strings.ToLower(strings.TrimSpace(tag))).
		Order("p.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list posts for tag %q: %w", tag, err)
	}

	return rows, nil
}
