package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gramlet-dev/gramlet/internal/auth"
	"github.com/gramlet-dev/gramlet/internal/models"
	"github.com/gramlet-dev/gramlet/internal/types"
	"gorm.io/gorm"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RequireAuth rejects requests without a valid Bearer token and stores the
// resolved caller identity in the request context.
func RequireAuth(gdb *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := resolveUser(ctx, gdb)

		if !ok {
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

// OptionalAuth resolves the caller when a valid Bearer token is present and
// lets anonymous requests through untouched. Used on public reads whose
// responses carry viewer-relative flags (is_liked, is_following).
func OptionalAuth(gdb *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.Next()
			return
		}

		if user, ok := resolveUser(ctx, gdb); ok {
			ctx.Set(types.ContextUserKey, user)
		}

		ctx.Next()
	}
}

func resolveUser(ctx *gin.Context, gdb *gorm.DB) (AuthenticatedUser, bool) {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
		return AuthenticatedUser{}, false
	}

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || parts[0] != "Bearer" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
		return AuthenticatedUser{}, false
	}

	userID, err := auth.VerifyJWT(parts[1])

	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return AuthenticatedUser{}, false
	}

	var user models.User

	if err := gdb.Where("id = ?", userID).First(&user).Error; err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return AuthenticatedUser{}, false
	}

	return AuthenticatedUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, true
}
