package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jessupi/jessbook/internal/database"
	"github.com/jessupi/jessbook/internal/handlers/dto"
	"github.com/jessupi/jessbook/internal/middleware"
	"github.com/jessupi/jessbook/internal/models"
)

type CommentHandler struct {
	db *database.Database
}

func NewCommentHandler(db *database.Database) *CommentHandler {
	return &CommentHandler{db: db}
}

// ListComments комментарии поста, новые первыми (?postId=)
func (h *CommentHandler) ListComments(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Query("postId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	comments, err := h.db.ListPostComments(uint(postID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get comments", "details": err.Error()})
		return
	}

	result := make([]gin.H, len(comments))
	for i, comment := range comments {
		entry := gin.H{
			"id":          comment.ID,
			"userId":      comment.UserID,
			"postId":      comment.PostID,
			"description": comment.Description,
			"createdAt":   comment.CreatedAt,
		}
		if comment.User.ID != 0 {
			entry["user"] = gin.H{
				"id":         comment.User.ID,
				"firstName":  comment.User.FirstName,
				"lastName":   comment.User.LastName,
				"profilePic": comment.User.ProfilePic,
			}
		}
		result[i] = entry
	}

	c.JSON(http.StatusOK, result)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.PostID == 0 || strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId and description are required"})
		return
	}

	comment := &models.Comment{
		UserID:      userID,
		PostID:      req.PostID,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := h.db.CreateComment(comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	affected, err := h.db.DeleteComment(uint(commentID), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete comment", "details": err.Error()})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment has been deleted"})
}
