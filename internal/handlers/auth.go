package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jessupi/jessbook/internal/database"
	"github.com/jessupi/jessbook/internal/handlers/dto"
	"github.com/jessupi/jessbook/internal/middleware"
	"github.com/jessupi/jessbook/internal/models"
	"github.com/jessupi/jessbook/internal/services"
	"github.com/jessupi/jessbook/internal/validation"
	"github.com/jessupi/jessbook/pkg/auth"
)

const invalidCredentials = "Invalid email or password"

type AuthHandler struct {
	db         *database.Database
	jwtManager *auth.JWTManager
	redis      *redis.Client
	mailer     services.Mailer
	clientURL  string
}

func NewAuthHandler(db *database.Database, jwtMgr *auth.JWTManager, rdb *redis.Client, mailer services.Mailer, clientURL string) *AuthHandler {
	return &AuthHandler{db: db, jwtManager: jwtMgr, redis: rdb, mailer: mailer, clientURL: clientURL}
}

// Register создаёт локальный аккаунт и подписывает его на админа.
// Все нарушения валидации возвращаются разом, картой поле -> сообщение.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Сначала валидация полей, потом уникальность: не раскрываем
	// существование аккаунта на мусорном вводе
	errs := validation.ValidateRegistration(req.FirstName, req.LastName, req.Email, req.Password, req.ConfirmPswd)
	if len(errs) > 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": errs})
		return
	}

	email := strings.TrimSpace(req.Email)

	if _, err := h.db.FindUserByEmail(email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "details": err.Error()})
		return
	}

	// Новый пользователь автоматически подписывается на админский аккаунт
	admin, err := h.db.FindAdmin()
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Admin account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "details": err.Error()})
		return
	}

	hash, err := auth.HashPassword(strings.TrimSpace(req.Password))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot hash password"})
		return
	}

	user := &models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: &hash,
		Role:         models.RoleUser,
		Origin:       models.OriginLocal,
		CreatedAt:    time.Now(),
	}

	if err := h.db.RegisterUser(user, admin.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User has been created"})
}

// Login выдаёт сессионный JWT в HTTP-only куке.
// Ответы для неизвестного email и неверного пароля совпадают по тексту.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, err := h.db.FindUserByEmail(email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": invalidCredentials})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "details": err.Error()})
		return
	}

	// У аккаунтов внешнего провайдера нет локального пароля
	if user.PasswordHash == nil || !auth.CheckPassword(password, *user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
		return
	}

	token, err := h.jwtManager.GenerateSession(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	auth.SetSessionCookie(c, token)
	c.JSON(http.StatusCreated, user)
}

// Logout сбрасывает куку и отзывает токен через черный список в Redis
// до его естественного истечения. Идемпотентен.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(auth.SessionCookie); err == nil && token != "" {
		if exp, err := h.jwtManager.Expiry(token); err == nil {
			if ttl := time.Until(exp); ttl > 0 {
				h.redis.Set(context.Background(), middleware.BlacklistPrefix+token, 1, ttl)
			}
		}
	}

	auth.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// RecoverAccount выдаёт часовой токен восстановления в отдельной куке
// и шлёт письмо со ссылкой. Сбой отправки письма не валит запрос:
// кука уже стоит, логируем и отвечаем 200.
func (h *AuthHandler) RecoverAccount(c *gin.Context) {
	var req dto.RecoverAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validation.ValidEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	user, err := h.db.FindUserByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "details": err.Error()})
		return
	}

	token, err := h.jwtManager.GenerateReset(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	auth.SetResetCookie(c, token)

	link := h.clientURL + "/reset-password/" + token
	if err := h.mailer.SendPasswordReset(user.Email, link); err != nil {
		logrus.Errorf("password reset email to %s failed: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recovery email sent"})
}

// ResetPassword меняет пароль по токену из куки восстановления.
// Использованный токен отзывается: кука сбрасывается, а сам токен
// попадает в черный список до истечения.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := validation.ValidatePasswordPair(req.Password, req.ConfirmPswd); len(errs) > 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": errs})
		return
	}

	token, err := c.Cookie(auth.ResetCookie)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	exists, err := h.redis.Exists(context.Background(), middleware.BlacklistPrefix+token).Result()
	if err != nil || exists > 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication"})
		return
	}

	userID, err := h.jwtManager.VerifyReset(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication", "details": err.Error()})
		return
	}

	hash, err := auth.HashPassword(strings.TrimSpace(req.Password))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot hash password"})
		return
	}

	if err := h.db.UpdatePasswordHash(userID, hash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password", "details": err.Error()})
		return
	}

	if exp, err := h.jwtManager.Expiry(token); err == nil {
		if ttl := time.Until(exp); ttl > 0 {
			h.redis.Set(context.Background(), middleware.BlacklistPrefix+token, 1, ttl)
		}
	}
	auth.ClearResetCookie(c)

	c.JSON(http.StatusOK, gin.H{"message": "Password has been updated"})
}
