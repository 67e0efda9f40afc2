package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gramlet-dev/gramlet/internal/auth"
	"github.com/gramlet-dev/gramlet/internal/middleware"
	"github.com/gramlet-dev/gramlet/internal/models"
	"github.com/gramlet-dev/gramlet/internal/services"
	"github.com/gramlet-dev/gramlet/internal/types"
)

func setupTest(t *testing.T) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	if err := auth.InitJWT("handler-test-secret", time.Hour); err != nil {
		t.Fatalf("InitJWT failed: %v", err)
	}
}

// asUser injects a resolved caller identity the way the auth middleware does.
func asUser(id uint, username string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(types.ContextUserKey, middleware.AuthenticatedUser{
			ID:       id,
			Username: username,
			Email:    username + "@example.com",
		})
	}
}

func jsonBody(t *testing.T, payload interface{}) *bytes.Reader {
	t.Helper()

	data, err := json.Marshal(payload)

	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}

	return bytes.NewReader(data)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}

	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}

	return body
}

type mockAuthService struct {
	RegisterFunc    func(ctx context.Context, input services.RegisterInput) (*models.User, error)
	LoginFunc       func(ctx context.Context, email, password string) (*models.User, error)
	GoogleLoginFunc func(ctx context.Context, input services.GoogleLoginInput) (*models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, input services.RegisterInput) (*models.User, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	return m.LoginFunc(ctx, email, password)
}

func (m *mockAuthService) GoogleLogin(ctx context.Context, input services.GoogleLoginInput) (*models.User, error) {
	return m.GoogleLoginFunc(ctx, input)
}

type mockPostService struct {
	CreateFunc     func(ctx context.Context, userID uint, caption, imageURL string) (*models.Post, error)
	GetFunc        func(ctx context.Context, postID uint, viewerID *uint) (*services.PostRow, error)
	UpdateFunc     func(ctx context.Context, callerID, postID uint, caption string) (*models.Post, error)
	DeleteFunc     func(ctx context.Context, callerID, postID uint) error
	FeedFunc       func(ctx context.Context, viewerID *uint, page, limit int, cursor *uint) ([]services.PostRow, *uint, error)
	ListByUserFunc func(ctx context.Context, userID uint, viewerID *uint, page, limit int) ([]services.PostRow, error)
	ListSavedFunc  func(ctx context.Context, userID uint, page, limit int) ([]services.PostRow, error)
	LikeFunc       func(ctx context.Context, userID, postID uint) error
	UnlikeFunc     func(ctx context.Context, userID, postID uint) error
	SaveFunc       func(ctx context.Context, userID, postID uint) error
	UnsaveFunc     func(ctx context.Context, userID, postID uint) error
}

func (m *mockPostService) Create(ctx context.Context, userID uint, caption, imageURL string) (*models.Post, error) {
	return m.CreateFunc(ctx, userID, caption, imageURL)
}

func (m *mockPostService) Get(ctx context.Context, postID uint, viewerID *uint) (*services.PostRow, error) {
	return m.GetFunc(ctx, postID, viewerID)
}

func (m *mockPostService) Update(ctx context.Context, callerID, postID uint, caption string) (*models.Post, error) {
	return m.UpdateFunc(ctx, callerID, postID, caption)
}

func (m *mockPostService) Delete(ctx context.Context, callerID, postID uint) error {
	return m.DeleteFunc(ctx, callerID, postID)
}

func (m *mockPostService) Feed(ctx context.Context, viewerID *uint, page, limit int, cursor *uint) ([]services.PostRow, *uint, error) {
	return m.FeedFunc(ctx, viewerID, page, limit, cursor)
}

func (m *mockPostService) ListByUser(ctx context.Context, userID uint, viewerID *uint, page, limit int) ([]services.PostRow, error) {
	return m.ListByUserFunc(ctx, userID, viewerID, page, limit)
}

func (m *mockPostService) ListSaved(ctx context.Context, userID uint, page, limit int) ([]services.PostRow, error) {
	return m.ListSavedFunc(ctx, userID, page, limit)
}

func (m *mockPostService) Like(ctx context.Context, userID, postID uint) error {
	return m.LikeFunc(ctx, userID, postID)
}

func (m *mockPostService) Unlike(ctx context.Context, userID, postID uint) error {
	return m.UnlikeFunc(ctx, userID, postID)
}

func (m *mockPostService) Save(ctx context.Context, userID, postID uint) error {
	return m.SaveFunc(ctx, userID, postID)
}

func (m *mockPostService) Unsave(ctx context.Context, userID, postID uint) error {
	return m.UnsaveFunc(ctx, userID, postID)
}

type mockFollowService struct {
	FollowFunc      func(ctx context.Context, followerID, targetID uint) error
	UnfollowFunc    func(ctx context.Context, followerID, targetID uint) error
	FollowersFunc   func(ctx context.Context, userID uint, viewerID *uint, page, limit int) ([]services.FollowUser, error)
	FollowingFunc   func(ctx context.Context, userID uint, viewerID *uint, page, limit int) ([]services.FollowUser, error)
	IsFollowingFunc func(ctx context.Context, viewerID, targetID uint) (bool, error)
}

func (m *mockFollowService) Follow(ctx context.Context, followerID, targetID uint) error {
	return m.FollowFunc(ctx, followerID, targetID)
}

func (m *mockFollowService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	return m.UnfollowFunc(ctx, followerID, targetID)
}

func (m *mockFollowService) Followers(ctx context.Context, userID uint, viewerID *uint, page, limit int) ([]services.FollowUser, error) {
	return m.FollowersFunc(ctx, userID, viewerID, page, limit)
}

func (m *mockFollowService) Following(ctx context.Context, userID uint, viewerID *uint, page, limit int) ([]services.FollowUser, error) {
	return m.FollowingFunc(ctx, userID, viewerID, page, limit)
}

func (m *mockFollowService) IsFollowing(ctx context.Context, viewerID, targetID uint) (bool, error) {
	return m.IsFollowingFunc(ctx, viewerID, targetID)
}
