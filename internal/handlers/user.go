package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/jessupi/jessbook/internal/database"
	"github.com/jessupi/jessbook/internal/middleware"
	"github.com/jessupi/jessbook/pkg/auth"
)

type UserHandler struct {
	db *database.Database
}

func NewUserHandler(db *database.Database) *UserHandler {
	return &UserHandler{db: db}
}

// GetMe возвращает текущего пользователя
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	user, err := h.db.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser возвращает профиль по id, хэш пароля наружу не уходит
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.db.GetUser(uint(userID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe меняет только переданные поля профиля
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req struct {
		FirstName  string `json:"firstName"`
		LastName   string `json:"lastName"`
		City       string `json:"city"`
		ProfilePic string `json:"profilePic"`
		CoverPic   string `json:"coverPic"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if req.FirstName != "" {
		if n := utf8.RuneCountInString(strings.TrimSpace(req.FirstName)); n < 2 || n > 35 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "First name must be between 2 and 35 characters"})
			return
		}
		user.FirstName = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		if n := utf8.RuneCountInString(strings.TrimSpace(req.LastName)); n < 1 || n > 35 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Last name must be between 1 and 35 characters"})
			return
		}
		user.LastName = strings.TrimSpace(req.LastName)
	}
	if req.City != "" {
		if utf8.RuneCountInString(req.City) > 85 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "City must be at most 85 characters"})
			return
		}
		user.City = req.City
	}
	if req.ProfilePic != "" {
		user.ProfilePic = req.ProfilePic
	}
	if req.CoverPic != "" {
		user.CoverPic = req.CoverPic
	}

	if err := h.db.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteMe удаляет аккаунт со всем контентом и связями и гасит сессию
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	if err := h.db.DeleteUser(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user", "details": err.Error()})
		return
	}

	auth.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Account has been deleted"})
}
