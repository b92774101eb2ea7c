package handlers

import (
	"net/http"
	"path/filepath"
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

const maxStoryTextLen = 45

// storyMediaExts расширения, принимаемые как фото или видео
var storyMediaExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	".mp4": true, ".mov": true, ".webm": true,
}

type StoryHandler struct {
	db  *database.Database
	hub *websocket.Hub
}

func NewStoryHandler(db *database.Database, hub *websocket.Hub) *StoryHandler {
	return &StoryHandler{db: db, hub: hub}
}

// ListStories отдаёт либо истории конкретного профиля (?userId=),
// либо ленту зрителя: своя история первой, дальше подписки.
// Перед каждым чтением протухшие истории глобально вычищаются.
func (h *StoryHandler) ListStories(c *gin.Context) {
	viewerID := c.MustGet(middleware.UserIDKey).(uint)
	now := time.Now()

	var (
		stories []models.Story
		err     error
	)

	if raw := c.Query("userId"); raw != "" {
		userID, parseErr := strconv.ParseUint(raw, 10, 64)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		stories, err = h.db.ListUserStories(uint(userID), now)
	} else {
		stories, err = h.db.ListFeedStories(viewerID, now)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stories", "details": err.Error()})
		return
	}

	result := make([]gin.H, len(stories))
	for i, story := range stories {
		result[i] = formatStoryResponse(&story)
	}

	c.JSON(http.StatusOK, result)
}

// CreateStory публикует историю на 24 часа.
// Прежняя живая история владельца при этом вытесняется:
// больше одной активной истории на пользователя не бывает.
func (h *StoryHandler) CreateStory(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req dto.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Media == "" && strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Story must have a file or text"})
		return
	}

	if req.Media != "" && !storyMediaExts[strings.ToLower(filepath.Ext(req.Media))] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported media format"})
		return
	}

	if utf8.RuneCountInString(req.Text) > maxStoryTextLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Story text must be at most 45 characters"})
		return
	}

	now := time.Now()
	story := &models.Story{
		UserID:    userID,
		Media:     req.Media,
		Text:      req.Text,
		CreatedAt: now,
		ExpiresAt: now.Add(models.StoryTTL),
	}

	if err := h.db.ReplaceStory(story); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create story", "details": err.Error()})
		return
	}

	h.notifyFollowers(userID)

	c.JSON(http.StatusCreated, formatStoryResponse(story))
}

// DeleteStory удаляет историю владельца до её истечения
func (h *StoryHandler) DeleteStory(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	storyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	affected, err := h.db.DeleteStory(uint(storyID), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete story", "details": err.Error()})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Story has been deleted"})
}

// notifyFollowers толкает событие подписчикам, ошибки ленты не валят запрос
func (h *StoryHandler) notifyFollowers(userID uint) {
	followerIDs, err := h.db.GetFollowerIDs(userID)
	if err != nil {
		logrus.Errorf("failed to load followers of %d: %v", userID, err)
		return
	}
	h.hub.NotifyUsers(followerIDs, websocket.Event{Type: websocket.TypeNewStory, UserID: userID})
}

func formatStoryResponse(story *models.Story) gin.H {
	response := gin.H{
		"id":        story.ID,
		"userId":    story.UserID,
		"media":     story.Media,
		"text":      story.Text,
		"createdAt": story.CreatedAt,
		"expiresAt": story.ExpiresAt,
	}

	if story.User.ID != 0 {
		response["user"] = gin.H{
			"id":         story.User.ID,
			"firstName":  story.User.FirstName,
			"lastName":   story.User.LastName,
			"profilePic": story.User.ProfilePic,
		}
	}

	return response
}
