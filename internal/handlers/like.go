package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jessupi/jessbook/internal/database"
	"github.com/jessupi/jessbook/internal/middleware"
)

type LikeHandler struct {
	db *database.Database
}

func NewLikeHandler(db *database.Database) *LikeHandler {
	return &LikeHandler{db: db}
}

// ListLikes id пользователей, лайкнувших пост (?postId=)
func (h *LikeHandler) ListLikes(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Query("postId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	ids, err := h.db.ListPostLikerIDs(uint(postID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get likes", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ids)
}

// AddLike идемпотентен: повторный лайк того же поста — no-op
func (h *LikeHandler) AddLike(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req struct {
		PostID uint `json:"postId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PostID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId is required"})
		return
	}

	if err := h.db.LikePost(userID, req.PostID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to like post", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post has been liked"})
}

func (h *LikeHandler) RemoveLike(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	postID, err := strconv.ParseUint(c.Query("postId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.db.UnlikePost(userID, uint(postID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unlike post", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post has been unliked"})
}
