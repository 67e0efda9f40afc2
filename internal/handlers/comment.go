package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gramlet-dev/gramlet/internal/services"
	"github.com/gramlet-dev/gramlet/internal/utils"
)

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentHandler struct {
	comments services.CommentService
}

func NewCommentHandler(comments services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) Add(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "postId")

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body AddCommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Comment content is required"})
		return
	}

	comment, err := h.comments.Add(ctx.Request.Context(), postID, userID, body.Content)

	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyContent):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Comment content is required"})
		case errors.Is(err, services.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		default:
			log.Printf("Failed to add comment to post %d: %v", postID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Comment added", "comment": comment})
}

func (h *CommentHandler) ListForPost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "postId")

	if !ok {
		return
	}

	page := utils.ParsePagination(ctx, 50)

	comments, err := h.comments.ListForPost(ctx.Request.Context(), postID, page.Page, page.Limit)

	if err != nil {
		log.Printf("Failed to list comments of post %d: %v", postID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"comments": comments, "page": page.Page, "limit": page.Limit})
}

func (h *CommentHandler) Get(ctx *gin.Context) {
	commentID, ok := parseIDParam(ctx, "commentId")

	if !ok {
		return
	}

	comment, err := h.comments.Get(ctx.Request.Context(), commentID)

	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		log.Printf("Failed to fetch comment %d: %v", commentID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(ctx *gin.Context) {
	commentID, ok := parseIDParam(ctx, "commentId")

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.comments.Delete(ctx.Request.Context(), userID, commentID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		case errors.Is(err, services.ErrNotOwner):
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		default:
			log.Printf("Failed to delete comment %d: %v", commentID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

func (h *CommentHandler) Like(ctx *gin.Context) {
	commentID, ok := parseIDParam(ctx, "commentId")

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.comments.Like(ctx.Request.Context(), userID, commentID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		log.Printf("Failed to like comment %d: %v", commentID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Comment liked"})
}

func (h *CommentHandler) Unlike(ctx *gin.Context) {
	commentID, ok := parseIDParam(ctx, "commentId")

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.comments.Unlike(ctx.Request.Context(), userID, commentID); err != nil {
		log.Printf("Failed to unlike comment %d: %v", commentID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Comment unliked"})
}
