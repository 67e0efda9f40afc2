package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gramlet-dev/gramlet/internal/models"
	"github.com/gramlet-dev/gramlet/internal/services"
	"github.com/gramlet-dev/gramlet/internal/utils"
)

type CreatePostRequest struct {
	Caption  string `json:"caption"`
	ImageURL string `json:"image_url" binding:"required"`
}

type UpdatePostRequest struct {
	Caption string `json:"caption"`
}

type PostResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Caption   string    `json:"caption"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func postResponse(post *models.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		UserID:    post.UserID,
		Caption:   post.Caption,
		ImageURL:  post.ImageURL,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

type PostHandler struct {
	posts services.PostService
	hub   *FeedHub
}

func NewPostHandler(posts services.PostService, hub *FeedHub) *PostHandler {
	return &PostHandler{posts: posts, hub: hub}
}

func (h *PostHandler) Create(ctx *gin.Context) {
	var body CreatePostRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	post, err := h.posts.Create(ctx.Request.Context(), userID, body.Caption, body.ImageURL)

	if err != nil {
		log.Printf("Failed to create post: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if h.hub != nil {
		h.hub.BroadcastNewPost(post.ID, post.UserID)
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Post created", "post": postResponse(post)})
}

func (h *PostHandler) Get(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "postId")

	if !ok {
		return
	}

	post, err := h.posts.Get(ctx.Request.Context(), postID, utils.GetViewerID(ctx))

	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		log.Printf("Failed to fetch post %d: %v", postID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, post)
}

func (h *PostHandler) Update(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "postId")

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdatePostRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	post, err := h.posts.Update(ctx.Request.Context(), userID, postID, body.Caption)

	if err != nil {
		h.respondPostError(ctx, postID, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Post updated", "post": postResponse(post)})
}

func (h *PostHandler) Delete(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "postId")

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.posts.Delete(ctx.Request.Context(), userID, postID); err != nil {
		h.respondPostError(ctx, postID, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *PostHandler) Feed(ctx *gin.Context) {
	page := utils.ParsePagination(ctx, 20)

	posts, nextCursor, err := h.posts.Feed(ctx.Request.Context(), utils.GetViewerID(ctx), page.Page, page.Limit, page.Cursor)

	if err != nil {
		log.Printf("Failed to fetch feed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"posts":      posts,
		"page":       page.Page,
		"limit":      page.Limit,
		"nextCursor": nextCursor,
	})
}

func (h *PostHandler) Like(ctx *gin.Context) {
	h.junction(ctx, h.posts.Like, "Post liked")
}

func (h *PostHandler) Unlike(ctx *gin.Context) {
	h.junction(ctx, h.posts.Unlike, "Post unliked")
}

func (h *PostHandler) Save(ctx *gin.Context) {
	h.junction(ctx, h.posts.Save, "Post saved")
}

func (h *PostHandler) Unsave(ctx *gin.Context) {
	h.junction(ctx, h.posts.Unsave, "Post unsaved")
}

func (h *PostHandler) junction(ctx *gin.Context, op func(ctx context.Context, userID, postID uint) error, message string) {
	postID, ok := parseIDParam(ctx, "postId")

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := op(ctx.Request.Context(), userID, postID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		log.Printf("Failed to update post %d: %v", postID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *PostHandler) respondPostError(ctx *gin.Context, postID uint, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, services.ErrNotOwner):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
	default:
		log.Printf("Failed to modify post %d: %v", postID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
