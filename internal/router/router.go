package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gramlet-dev/gramlet/internal/handlers"
	"github.com/gramlet-dev/gramlet/internal/middleware"
	"github.com/gramlet-dev/gramlet/internal/services"
	"github.com/gramlet-dev/gramlet/internal/storage"
	"github.com/gramlet-dev/gramlet/internal/types"
	"gorm.io/gorm"
)

func New(gdb *gorm.DB, uploader storage.Uploader) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(services.NewAuthService(gdb))
	userHandler := handlers.NewUserHandler(services.NewUserService(gdb), services.NewPostService(gdb), uploader)
	followHandler := handlers.NewFollowHandler(services.NewFollowService(gdb))
	hub := handlers.NewFeedHub()
	postHandler := handlers.NewPostHandler(services.NewPostService(gdb), hub)
	commentHandler := handlers.NewCommentHandler(services.NewCommentService(gdb))
	searchHandler := handlers.NewSearchHandler(services.NewSearchService(gdb))

	requireAuth := middleware.RequireAuth(gdb)
	optionalAuth := middleware.OptionalAuth(gdb)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/feed", hub.Handle)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.Google)
			auth.POST("/logout", authHandler.Logout)
		}

		users := api.Group("/users")
		{
			users.GET("/me", requireAuth, userHandler.Me)
			users.PUT("/me", requireAuth, userHandler.UpdateMe)
			users.POST("/me/avatar", requireAuth, userHandler.UploadAvatar)
			users.GET("/:userId", userHandler.GetProfile)
			users.GET("/:userId/posts", optionalAuth, userHandler.Posts)
			users.GET("/:userId/saved", requireAuth, userHandler.SavedPosts)
			users.GET("/:userId/stats", userHandler.Stats)

			users.POST("/:userId/follow", requireAuth, followHandler.Follow)
			users.DELETE("/:userId/follow", requireAuth, followHandler.Unfollow)
			users.GET("/:userId/followers", optionalAuth, followHandler.Followers)
			users.GET("/:userId/following", optionalAuth, followHandler.Following)
			users.GET("/:userId/follow-status", requireAuth, followHandler.Status)
		}

		posts := api.Group("/posts")
		{
			posts.POST("", requireAuth, postHandler.Create)
			posts.GET("/feed", optionalAuth, postHandler.Feed)
			posts.GET("/:postId", optionalAuth, postHandler.Get)
			posts.PUT("/:postId", requireAuth, postHandler.Update)
			posts.DELETE("/:postId", requireAuth, postHandler.Delete)

			posts.POST("/:postId/like", requireAuth, postHandler.Like)
			posts.DELETE("/:postId/like", requireAuth, postHandler.Unlike)
			posts.POST("/:postId/save", requireAuth, postHandler.Save)
			posts.DELETE("/:postId/save", requireAuth, postHandler.Unsave)

			posts.POST("/:postId/comments", requireAuth, commentHandler.Add)
			posts.GET("/:postId/comments", commentHandler.ListForPost)
		}

		comments := api.Group("/comments")
		{
			comments.GET("/:commentId", commentHandler.Get)
			comments.DELETE("/:commentId", requireAuth, commentHandler.Delete)
			comments.POST("/:commentId/like", requireAuth, commentHandler.Like)
			comments.DELETE("/:commentId/like", requireAuth, commentHandler.Unlike)
		}

		search := api.Group("/search")
		{
			search.GET("/users", optionalAuth, searchHandler.Users)
			search.GET("/posts", searchHandler.Posts)
			search.GET("/hashtags", searchHandler.Hashtags)
		}

		api.GET("/hashtags/:tag/posts", searchHandler.PostsByTag)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Route not found"})
	})

	return r
}
