package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gramlet-dev/gramlet/internal/services"
)

func newFollowRouter(mock *mockFollowService) *gin.Engine {
	h := NewFollowHandler(mock)

	r := gin.New()
	r.POST("/api/users/:userId/follow", asUser(1, "alice"), h.Follow)
	r.DELETE("/api/users/:userId/follow", asUser(1, "alice"), h.Unfollow)
	r.GET("/api/users/:userId/followers", h.Followers)
	r.GET("/api/users/:userId/follow-status", asUser(1, "alice"), h.Status)

	return r
}

func TestFollowSelf(t *testing.T) {
	setupTest(t)

	mock := &mockFollowService{
		FollowFunc: func(ctx context.Context, followerID, targetID uint) error {
			return services.ErrSelfFollow
		},
	}

	r := newFollowRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users/1/follow", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	if body := decodeBody(t, w); body["error"] != "Cannot follow yourself" {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestFollowUnknownUser(t *testing.T) {
	setupTest(t)

	mock := &mockFollowService{
		FollowFunc: func(ctx context.Context, followerID, targetID uint) error {
			return services.ErrNotFound
		},
	}

	r := newFollowRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users/99/follow", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestFollowSuccess(t *testing.T) {
	setupTest(t)

	var gotFollower, gotTarget uint

	mock := &mockFollowService{
		FollowFunc: func(ctx context.Context, followerID, targetID uint) error {
			gotFollower, gotTarget = followerID, targetID
			return nil
		},
	}

	r := newFollowRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users/2/follow", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	if gotFollower != 1 || gotTarget != 2 {
		t.Errorf("Expected follow 1->2, got %d->%d", gotFollower, gotTarget)
	}
}

func TestFollowersListing(t *testing.T) {
	setupTest(t)

	mock := &mockFollowService{
		FollowersFunc: func(ctx context.Context, userID uint, viewerID *uint, page, limit int) ([]services.FollowUser, error) {
			if userID != 5 {
				t.Errorf("Expected user 5, got %d", userID)
			}
			if viewerID != nil {
				t.Errorf("Expected nil viewer for anonymous request, got %d", *viewerID)
			}
			return []services.FollowUser{{ID: 2, Username: "bob"}}, nil
		},
	}

	r := newFollowRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/users/5/followers", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	followers, ok := body["followers"].([]interface{})

	if !ok || len(followers) != 1 {
		t.Errorf("Unexpected followers payload: %v", body["followers"])
	}
}

func TestFollowStatus(t *testing.T) {
	setupTest(t)

	mock := &mockFollowService{
		IsFollowingFunc: func(ctx context.Context, viewerID, targetID uint) (bool, error) {
			return true, nil
		},
	}

	r := newFollowRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/users/2/follow-status", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	if body := decodeBody(t, w); body["is_following"] != true {
		t.Errorf("Expected is_following true, got %v", body["is_following"])
	}
}
