package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gramlet-dev/gramlet/internal/services"
	"github.com/gramlet-dev/gramlet/internal/utils"
)

type FollowHandler struct {
	follows services.FollowService
}

func NewFollowHandler(follows services.FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

func (h *FollowHandler) Follow(ctx *gin.Context) {
	targetID, ok := parseIDParam(ctx, "userId")

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.follows.Follow(ctx.Request.Context(), userID, targetID); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfFollow):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		case errors.Is(err, services.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			log.Printf("Failed to follow user %d: %v", targetID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User followed"})
}

func (h *FollowHandler) Unfollow(ctx *gin.Context) {
	targetID, ok := parseIDParam(ctx, "userId")

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.follows.Unfollow(ctx.Request.Context(), userID, targetID); err != nil {
		log.Printf("Failed to unfollow user %d: %v", targetID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User unfollowed"})
}

func (h *FollowHandler) Followers(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")

	if !ok {
		return
	}

	page := utils.ParsePagination(ctx, 20)

	followers, err := h.follows.Followers(ctx.Request.Context(), userID, utils.GetViewerID(ctx), page.Page, page.Limit)

	if err != nil {
		log.Printf("Failed to list followers of %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"followers": followers, "page": page.Page, "limit": page.Limit})
}

func (h *FollowHandler) Following(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")

	if !ok {
		return
	}

	page := utils.ParsePagination(ctx, 20)

	following, err := h.follows.Following(ctx.Request.Context(), userID, utils.GetViewerID(ctx), page.Page, page.Limit)

	if err != nil {
		log.Printf("Failed to list following of %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"following": following, "page": page.Page, "limit": page.Limit})
}

func (h *FollowHandler) Status(ctx *gin.Context) {
	targetID, ok := parseIDParam(ctx, "userId")

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	isFollowing, err := h.follows.IsFollowing(ctx.Request.Context(), userID, targetID)

	if err != nil {
		log.Printf("Failed to check follow status for %d: %v", targetID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"is_following": isFollowing})
}
