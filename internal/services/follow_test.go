package services

import (
	"context"
	"errors"
	"testing"

	"github.com/gramlet-dev/gramlet/internal/models"
)

func TestFollowIsIdempotent(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewFollowService(gdb)
	ctx := context.Background()

	alice := createTestUser(t, gdb, "alice")
	bob := createTestUser(t, gdb, "bob")

	if err := svc.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	if err := svc.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Repeated follow failed: %v", err)
	}

	var count int64
	if err := gdb.Model(&models.Follow{}).Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}

	if count != 1 {
		t.Errorf("Expected exactly one follow edge, got %d", count)
	}
}

func TestFollowSelfRejected(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewFollowService(gdb)

	alice := createTestUser(t, gdb, "alice")

	if err := svc.Follow(context.Background(), alice.ID, alice.ID); !errors.Is(err, ErrSelfFollow) {
		t.Errorf("Expected ErrSelfFollow, got %v", err)
	}
}

func TestFollowUnknownTarget(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewFollowService(gdb)

	alice := createTestUser(t, gdb, "alice")

	if err := svc.Follow(context.Background(), alice.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUnfollowIsIdempotent(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewFollowService(gdb)
	ctx := context.Background()

	alice := createTestUser(t, gdb, "alice")
	bob := createTestUser(t, gdb, "bob")

	if err := svc.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	if err := svc.Unfollow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}

	// Removing an edge that is already gone is not an error.
	if err := svc.Unfollow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Repeated unfollow failed: %v", err)
	}

	following, err := svc.IsFollowing(ctx, alice.ID, bob.ID)

	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}

	if following {
		t.Error("Expected follow edge to be gone")
	}
}

func TestFollowersAndFollowing(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewFollowService(gdb)
	ctx := context.Background()

	alice := createTestUser(t, gdb, "alice")
	bob := createTestUser(t, gdb, "bob")
	carol := createTestUser(t, gdb, "carol")

	for _, follower := range []uint{bob.ID, carol.ID} {
		if err := svc.Follow(ctx, follower, alice.ID); err != nil {
			t.Fatalf("Follow failed: %v", err)
		}
	}

	if err := svc.Follow(ctx, bob.ID, carol.ID); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	followers, err := svc.Followers(ctx, alice.ID, &bob.ID, 1, 20)

	if err != nil {
		t.Fatalf("Followers failed: %v", err)
	}

	if len(followers) != 2 {
		t.Fatalf("Expected 2 followers, got %d", len(followers))
	}

	for _, row := range followers {
		switch row.ID {
		case carol.ID:
			// Bob follows carol, so the viewer flag is on.
			if !row.IsFollowing {
				t.Error("Expected is_following true for carol")
			}
		case bob.ID:
			if row.IsFollowing {
				t.Error("Expected is_following false for the viewer's own row")
			}
		}
	}

	following, err := svc.Following(ctx, bob.ID, nil, 1, 20)

	if err != nil {
		t.Fatalf("Following failed: %v", err)
	}

	if len(following) != 2 {
		t.Fatalf("Expected bob to follow 2 users, got %d", len(following))
	}

	// Anonymous viewers never see a true flag.
	for _, row := range following {
		if row.IsFollowing {
			t.Errorf("Expected is_following false for anonymous viewer, got true for %s", row.Username)
		}
	}
}
