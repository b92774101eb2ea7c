package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jessupi/jessbook/internal/database"
	"github.com/jessupi/jessbook/internal/middleware"
)

type RelationshipHandler struct {
	db *database.Database
}

func NewRelationshipHandler(db *database.Database) *RelationshipHandler {
	return &RelationshipHandler{db: db}
}

// ListFollowers id подписчиков пользователя (?userId=)
func (h *RelationshipHandler) ListFollowers(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	ids, err := h.db.GetFollowerIDs(uint(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get followers", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ids)
}

// Follow подписывает вызывающего, повторная подписка — no-op
func (h *RelationshipHandler) Follow(c *gin.Context) {
	followerID := c.MustGet(middleware.UserIDKey).(uint)

	var req struct {
		UserID uint `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	if req.UserID == followerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	if err := h.db.Follow(followerID, req.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to follow", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Following"})
}

func (h *RelationshipHandler) Unfollow(c *gin.Context) {
	followerID := c.MustGet(middleware.UserIDKey).(uint)

	userID, err := strconv.ParseUint(c.Query("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.db.Unfollow(followerID, uint(userID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unfollow", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}
