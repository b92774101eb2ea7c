package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/jessupi/jessbook/internal/handlers"
	"github.com/jessupi/jessbook/internal/middleware"
	"github.com/jessupi/jessbook/internal/models"
	pkgauth "github.com/jessupi/jessbook/pkg/auth"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	OAuth        *handlers.OAuthHandler
	User         *handlers.UserHandler
	Story        *handlers.StoryHandler
	Post         *handlers.PostHandler
	Comment      *handlers.CommentHandler
	Like         *handlers.LikeHandler
	Relationship *handlers.RelationshipHandler
	Admin        *handlers.AdminHandler
	Feed         *handlers.FeedHandler
	Upload       *handlers.UploadHandler
}

func APIEndpoints(r *gin.Engine, h *Handlers, jwtMgr *pkgauth.JWTManager, rdb *redis.Client) {
	// Auth endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.POST("/recover-account", h.Auth.RecoverAccount)
		auth.POST("/reset-password/:token", h.Auth.ResetPassword)

		auth.GET("/google/login", h.OAuth.GoogleLogin)
		auth.GET("/google/callback", h.OAuth.GoogleCallback)
	}

	// API endpoints, только для аутентифицированных
	api := r.Group("/api", middleware.Session(jwtMgr, rdb))
	{
		api.GET("/users/me", h.User.GetMe)
		api.PUT("/users/me", h.User.UpdateMe)
		api.DELETE("/users/me", h.User.DeleteMe)
		api.GET("/users/:id", h.User.GetUser)

		api.GET("/stories", h.Story.ListStories)
		api.POST("/stories", h.Story.CreateStory)
		api.DELETE("/stories/:id", h.Story.DeleteStory)

		api.GET("/posts", h.Post.GetFeed)
		api.POST("/posts", h.Post.CreatePost)
		api.DELETE("/posts/:id", h.Post.DeletePost)

		api.GET("/comments", h.Comment.ListComments)
		api.POST("/comments", h.Comment.CreateComment)
		api.DELETE("/comments/:id", h.Comment.DeleteComment)

		api.GET("/likes", h.Like.ListLikes)
		api.POST("/likes", h.Like.AddLike)
		api.DELETE("/likes", h.Like.RemoveLike)

		api.GET("/relationships", h.Relationship.ListFollowers)
		api.POST("/relationships", h.Relationship.Follow)
		api.DELETE("/relationships", h.Relationship.Unfollow)

		api.POST("/upload", h.Upload.Upload)

		api.GET("/ws", h.Feed.HandleFeed)
	}

	// Админка поверх той же сессии, но с проверкой роли
	admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)
	}
}
