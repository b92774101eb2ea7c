package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jessupi/jessbook/internal/database"
	"github.com/jessupi/jessbook/internal/handlers/dto"
	"github.com/jessupi/jessbook/internal/middleware"
	"github.com/jessupi/jessbook/internal/models"
	"github.com/jessupi/jessbook/internal/websocket"
)

const maxPostDescriptionLen = 500

type PostHandler struct {
	db  *database.Database
	hub *websocket.Hub
}

func NewPostHandler(db *database.Database, hub *websocket.Hub) *PostHandler {
	return &PostHandler{db: db, hub: hub}
}

// GetFeed посты зрителя и тех, на кого он подписан, новые первыми.
// ?userId= сужает выборку до одного профиля.
func (h *PostHandler) GetFeed(c *gin.Context) {
	viewerID := c.MustGet(middleware.UserIDKey).(uint)

	var (
		posts []models.Post
		err   error
	)

	if raw := c.Query("userId"); raw != "" {
		userID, parseErr := strconv.ParseUint(raw, 10, 64)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		posts, err = h.db.ListUserPosts(uint(userID))
	} else {
		posts, err = h.db.ListFeedPosts(viewerID)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get posts", "details": err.Error()})
		return
	}

	result := make([]gin.H, len(posts))
	for i, post := range posts {
		result[i] = formatPostResponse(&post)
	}

	c.JSON(http.StatusOK, result)
}

// CreatePost публикует пост и уведомляет подписчиков
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Description) == "" && req.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post must have text or an image"})
		return
	}
	if utf8.RuneCountInString(req.Description) > maxPostDescriptionLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post text must be at most 500 characters"})
		return
	}

	post := &models.Post{
		UserID:      userID,
		Description: req.Description,
		Image:       req.Image,
		CreatedAt:   time.Now(),
	}

	if err := h.db.CreatePost(post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post", "details": err.Error()})
		return
	}

	if followerIDs, err := h.db.GetFollowerIDs(userID); err == nil {
		h.hub.NotifyUsers(followerIDs, websocket.Event{Type: websocket.TypeNewPost, UserID: userID})
	} else {
		logrus.Errorf("failed to load followers of %d: %v", userID, err)
	}

	c.JSON(http.StatusCreated, formatPostResponse(post))
}

// DeletePost удаляет пост владельца вместе с комментариями и лайками
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	affected, err := h.db.DeletePost(uint(postID), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post", "details": err.Error()})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post has been deleted"})
}

func formatPostResponse(post *models.Post) gin.H {
	response := gin.H{
		"id":          post.ID,
		"userId":      post.UserID,
		"description": post.Description,
		"image":       post.Image,
		"createdAt":   post.CreatedAt,
	}

	if post.User.ID != 0 {
		response["user"] = gin.H{
			"id":         post.User.ID,
			"firstName":  post.User.FirstName,
			"lastName":   post.User.LastName,
			"profilePic": post.User.ProfilePic,
		}
	}

	return response
}
