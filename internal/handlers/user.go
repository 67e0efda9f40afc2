package handlers

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gramlet-dev/gramlet/internal/services"
	"github.com/gramlet-dev/gramlet/internal/storage"
	"github.com/gramlet-dev/gramlet/internal/utils"
)

const maxAvatarSize = 5 << 20 // 5 MiB

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

type UserHandler struct {
	users    services.UserService
	posts    services.PostService
	uploader storage.Uploader
}

func NewUserHandler(users services.UserService, posts services.PostService, uploader storage.Uploader) *UserHandler {
	return &UserHandler{users: users, posts: posts, uploader: uploader}
}

func (h *UserHandler) Me(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := h.users.Profile(ctx.Request.Context(), userID)

	if err != nil {
		log.Printf("Failed to fetch profile %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateMe(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	profile, err := h.users.UpdateProfile(ctx.Request.Context(), userID, services.ProfileUpdate{
		FullName:  body.FullName,
		Bio:       body.Bio,
		AvatarURL: body.AvatarURL,
	})

	if err != nil {
		log.Printf("Failed to update profile %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": profile})
}

func (h *UserHandler) GetProfile(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")

	if !ok {
		return
	}

	profile, err := h.users.Profile(ctx.Request.Context(), userID)

	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Failed to fetch profile %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func (h *UserHandler) Stats(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")

	if !ok {
		return
	}

	stats, err := h.users.Stats(ctx.Request.Context(), userID)

	if err != nil {
		log.Printf("Failed to fetch stats of %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

func (h *UserHandler) Posts(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")

	if !ok {
		return
	}

	page := utils.ParsePagination(ctx, 20)

	posts, err := h.posts.ListByUser(ctx.Request.Context(), userID, utils.GetViewerID(ctx), page.Page, page.Limit)

	if err != nil {
		log.Printf("Failed to list posts of %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"posts": posts, "page": page.Page, "limit": page.Limit})
}

func (h *UserHandler) SavedPosts(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	page := utils.ParsePagination(ctx, 20)

	posts, err := h.posts.ListSaved(ctx.Request.Context(), userID, page.Page, page.Limit)

	if err != nil {
		log.Printf("Failed to list saved posts of %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"posts": posts, "page": page.Page, "limit": page.Limit})
}

func (h *UserHandler) UploadAvatar(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if h.uploader == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Upload storage is not configured"})
		return
	}

	file, err := ctx.FormFile("avatar")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if file.Size > maxAvatarSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File is too large"})
		return
	}

	src, err := file.Open()

	if err != nil {
		log.Printf("Failed to open uploaded file: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer src.Close()

	key := "avatars/" + uuid.New().String() + filepath.Ext(file.Filename)

	url, err := h.uploader.Upload(ctx.Request.Context(), key, file.Header.Get("Content-Type"), src)

	if err != nil {
		log.Printf("Failed to upload avatar for %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
		return
	}

	profile, err := h.users.SetAvatar(ctx.Request.Context(), userID, url)

	if err != nil {
		log.Printf("Failed to store avatar for %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Avatar uploaded", "user": profile})
}
