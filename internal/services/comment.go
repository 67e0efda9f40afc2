package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gramlet-dev/gramlet/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRow struct {
	ID         uint      `json:"id"`
	PostID     uint      `json:"post_id"`
	UserID     uint      `json:"user_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	Username   string    `json:"username"`
	AvatarURL  string    `json:"avatar_url"`
	LikesCount int64     `json:"likes_count"`
}

type CommentService interface {
	Add(ctx context.Context, postID, userID uint, content string) (*CommentRow, error)
	ListForPost(ctx context.Context, postID uint, page, limit int) ([]CommentRow, error)
	Get(ctx context.Context, commentID uint) (*CommentRow, error)
	Delete(ctx context.Context, callerID, commentID uint) error
	Like(ctx context.Context, userID, commentID uint) error
	Unlike(ctx context.Context, userID, commentID uint) error
}

type commentService struct {
	db *gorm.DB
}

func NewCommentService(gdb *gorm.DB) CommentService {
	return &commentService{db: gdb}
}

func commentRows(gdb *gorm.DB) *gorm.DB {
	return gdb.
		Table("comments AS c").
		Select(`c.id, c.post_id, c.user_id, c.content, c.created_at,
			u.username, u.avatar_url,
			(SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = c.id) AS likes_count`).
		Joins("JOIN users u ON u.id = c.user_id")
}

func (s *commentService) Add(ctx context.Context, postID, userID uint, content string) (*CommentRow, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	comment := models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}

	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return s.Get(ctx, comment.ID)
}

func (s *commentService) ListForPost(ctx context.Context, postID uint, page, limit int) ([]CommentRow, error) {
	rows := []CommentRow{}

	err := commentRows(s.db.WithContext(ctx)).
		Where("c.post_id = ?", postID).
		Order("c.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list comments of post %d: %w", postID, err)
	}

	return rows, nil
}

func (s *commentService) Get(ctx context.Context, commentID uint) (*CommentRow, error) {
	var row CommentRow

	err := commentRows(s.db.WithContext(ctx)).
		Where("c.id = ?", commentID).
		Take(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch comment %d: %w", commentID, err)
	}

	return &row, nil
}

func (s *commentService) Delete(ctx context.Context, callerID, commentID uint) error {
	var comment models.Comment

	err := s.db.WithContext(ctx).First(&comment, commentID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch comment %d: %w", commentID, err)
	}

	if comment.UserID != callerID {
		return ErrNotOwner
	}

	if err := s.db.WithContext(ctx).Delete(&models.Comment{}, commentID).Error; err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", commentID, err)
	}

	return nil
}

func (s *commentService) Like(ctx context.Context, userID, commentID uint) error {
	like := models.CommentLike{CommentID: commentID, UserID: userID}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error

	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to like comment %d: %w", commentID, err)
	}

	return nil
}

func (s *commentService) Unlike(ctx context.Context, userID, commentID uint) error {
	err := s.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&models.CommentLike{}).Error

	if err != nil {
		return fmt.Errorf("failed to unlike comment %d: %w", commentID, err)
	}

	return nil
}
