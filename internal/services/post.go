package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gramlet-dev/gramlet/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRow is a post joined with its owner, engagement counts and the
// viewer-relative flags. It is the shape every post listing returns.
type PostRow struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	Caption       string    `json:"caption"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Username      string    `json:"username"`
	AvatarURL     string    `json:"avatar_url"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
	IsLiked       bool      `json:"is_liked"`
	IsSaved       bool      `json:"is_saved"`
}

type PostService interface {
	Create(ctx context.Context, userID uint, caption, imageURL string) (*models.Post, error)
	Get(ctx context.Context, postID uint, viewerID *uint) (*PostRow, error)
	Update(ctx context.Context, callerID, postID uint, caption string) (*models.Post, error)
	Delete(ctx context.Context, callerID, postID uint) error
	Feed(ctx context.Context, viewerID *uint, page, limit int, cursor *uint) ([]PostRow, *uint, error)
	ListByUser(ctx context.Context, userID uint, viewerID *uint, page, limit int) ([]PostRow, error)
	ListSaved(ctx context.Context, userID uint, page, limit int) ([]PostRow, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	Save(ctx context.Context, userID, postID uint) error
	Unsave(ctx context.Context, userID, postID uint) error
}

type postService struct {
	db *gorm.DB
}

func NewPostService(gdb *gorm.DB) PostService {
	return &postService{db: gdb}
}

// postRows builds the shared post listing query. A nil viewer binds NULL
// into the EXISTS subqueries, so is_liked/is_saved come back false.
func postRows(gdb *gorm.DB, viewerID *uint) *gorm.DB {
	viewer := viewerArg(viewerID)

	return gdb.
		Table("posts AS p").
		Select(`p.id, p.user_id, p.caption, p.image_url, p.created_at, p.updated_at,
			u.username, u.avatar_url,
			(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS likes_count,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments_count,
			EXISTS(SELECT 1 FROM post_likes pl2 WHERE pl2.post_id = p.id AND pl2.user_id = ?) AS is_liked,
			EXISTS(SELECT 1 FROM saved_posts sp WHERE sp.post_id = p.id AND sp.user_id = ?) AS is_saved`,
			viewer, viewer).
		Joins("JOIN users u ON u.id = p.user_id")
}

// Create inserts the post and its hashtag rows/links in one transaction, so
// a failed link never leaves a tagless post behind.
func (s *postService) Create(ctx context.Context, userID uint, caption, imageURL string) (*models.Post, error) {
	post := models.Post{
		UserID:   userID,
		Caption:  caption,
		ImageURL: imageURL,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		for _, tag := range ExtractHashtags(caption) {
			hashtag := models.Hashtag{Tag: tag}

			if err := tx.Where("tag = ?", tag).FirstOrCreate(&hashtag).Error; err != nil {
				return fmt.Errorf("failed to upsert hashtag %q: %w", tag, err)
			}

			link := models.PostHashtag{PostID: post.ID, HashtagID: hashtag.ID}

			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link hashtag %q: %w", tag, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (s *postService) Get(ctx context.Context, postID uint, viewerID *uint) (*PostRow, error) {
	var row PostRow

	err := postRows(s.db.WithContext(ctx), viewerID).
		Where("p.id = ?", postID).
		Take(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch post %d: %w", postID, err)
	}

	return &row, nil
}

func (s *postService) Update(ctx context.Context, callerID, postID uint, caption string) (*models.Post, error) {
	post, err := s.ownedPost(ctx, callerID, postID)

	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(post).Update("caption", caption).Error; err != nil {
		return nil, fmt.Errorf("failed to update post %d: %w", postID, err)
	}

	return post, nil
}

// Delete removes the post; likes, saves, comments and hashtag links go with
// it through the foreign key cascades.
func (s *postService) Delete(ctx context.Context, callerID, postID uint) error {
	if _, err := s.ownedPost(ctx, callerID, postID); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Post{}, postID).Error; err != nil {
		return fmt.Errorf("failed to delete post %d: %w", postID, err)
	}

	return nil
}

// Feed is global and reverse-chronological: it is deliberately not filtered
// by the follow graph. When a cursor is present it takes precedence as the
// position marker; nextCursor is the id of the last row of the page.
func (s *postService) Feed(ctx context.Context, viewerID *uint, page, limit int, cursor *uint) ([]PostRow, *uint, error) {
	rows := []PostRow{}

	query := postRows(s.db.WithContext(ctx), viewerID)

	if cursor != nil {
		query = query.Where("p.id < ?", *cursor)
	}

	err := query.
		Order("p.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error

	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	var nextCursor *uint

	if len(rows) > 0 {
		nextCursor = &rows[len(rows)-1].ID
	}

	return rows, nextCursor, nil
}

func (s *postService) ListByUser(ctx context.Context, userID uint, viewerID *uint, page, limit int) ([]PostRow, error) {
	rows := []PostRow{}

	err := postRows(s.db.WithContext(ctx), viewerID).
		Where("p.user_id = ?", userID).
		Order("p.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list posts of user %d: %w", userID, err)
	}

	return rows, nil
}

// ListSaved orders by when the post was saved, not when it was created.
func (s *postService) ListSaved(ctx context.Context, userID uint, page, limit int) ([]PostRow, error) {
	rows := []PostRow{}

	err := postRows(s.db.WithContext(ctx), &userID).
		Joins("JOIN saved_posts s ON s.post_id = p.id").
		Where("s.user_id = ?", userID).
		Order("s.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list saved posts of user %d: %w", userID, err)
	}

	return rows, nil
}

func (s *postService) Like(ctx context.Context, userID, postID uint) error {
	like := models.PostLike{PostID: postID, UserID: userID}
	return s.insertJunction(ctx, &like, postID)
}

func (s *postService) Unlike(ctx context.Context, userID, postID uint) error {
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.PostLike{}).Error

	if err != nil {
		return fmt.Errorf("failed to unlike post %d: %w", postID, err)
	}

	return nil
}

func (s *postService) Save(ctx context.Context, userID, postID uint) error {
	saved := models.SavedPost{PostID: postID, UserID: userID}
	return s.insertJunction(ctx, &saved, postID)
}

func (s *postService) Unsave(ctx context.Context, userID, postID uint) error {
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.SavedPost{}).Error

	if err != nil {
		return fmt.Errorf("failed to unsave post %d: %w", postID, err)
	}

	return nil
}

// insertJunction inserts an idempotent unique-pair row; duplicates are
// swallowed by ON CONFLICT DO NOTHING.
func (s *postService) insertJunction(ctx context.Context, row interface{}, postID uint) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to write junction row for post %d: %w", postID, err)
	}

	return nil
}

func (s *postService) ownedPost(ctx context.Context, callerID, postID uint) (*models.Post, error) {
	var post models.Post

	err := s.db.WithContext(ctx).First(&post, postID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch post %d: %w", postID, err)
	}

	if post.UserID != callerID {
		return nil, ErrNotOwner
	}

	return &post, nil
}
