package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gramlet-dev/gramlet/internal/services"
	"github.com/gramlet-dev/gramlet/internal/utils"
)

type SearchHandler struct {
	search services.SearchService
}

func NewSearchHandler(search services.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

func (h *SearchHandler) Users(ctx *gin.Context) {
	page := utils.ParsePagination(ctx, 20)

	users, err := h.search.Users(ctx.Request.Context(), ctx.Query("q"), utils.GetViewerID(ctx), page.Page, page.Limit)

	if err != nil {
		log.Printf("Failed to search users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"users": users, "page": page.Page, "limit": page.Limit})
}

func (h *SearchHandler) Posts(ctx *gin.Context) {
	page := utils.ParsePagination(ctx, 20)

	posts, err := h.search.Posts(ctx.Request.Context(), ctx.Query("q"), page.Page, page.Limit)

	if err != nil {
		if errors.Is(err, services.ErrBlankQuery) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
			return
		}
		log.Printf("Failed to search posts: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"posts": posts, "page": page.Page, "limit": page.Limit})
}

func (h *SearchHandler) Hashtags(ctx *gin.Context) {
	page := utils.ParsePagination(ctx, 20)

	hashtags, err := h.search.Hashtags(ctx.Request.Context(), ctx.Query("q"), page.Page, page.Limit)

	if err != nil {
		if errors.Is(err, services.ErrBlankQuery) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
			return
		}
		log.Printf("Failed to search hashtags: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"hashtags": hashtags, "page": page.Page, "limit": page.Limit})
}

func (h *SearchHandler) PostsByTag(ctx *gin.Context) {
	tag := ctx.Param("tag")

	page := utils.ParsePagination(ctx, 20)

	posts, err := h.search.PostsByTag(ctx.Request.Context(), tag, page.Page, page.Limit)

	if err != nil {
		log.Printf("Failed to list posts for tag %q: %v", tag, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"posts": posts, "tag": tag, "page": page.Page, "limit": page.Limit})
}
