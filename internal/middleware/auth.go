package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/jessupi/jessbook/internal/models"
	"github.com/jessupi/jessbook/pkg/auth"
)

const (
	UserIDKey = "userID"
	RoleKey   = "userRole"
)

// BlacklistPrefix ключи отозванных токенов в Redis
const BlacklistPrefix = "blacklist:"

// Session проверяет сессионную куку и кладёт личность вызывающего в контекст
func Session(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookie)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		// Токен мог быть отозван при logout
		exists, err := redisClient.Exists(context.Background(), BlacklistPrefix+token).Result()
		if err != nil || exists > 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication"})
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifySession(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole пускает дальше только вызывающих с нужной ролью,
// вешается после Session
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, ok := c.Get(RoleKey)
		callerRole, isRole := got.(models.Role)
		if !ok || !isRole || callerRole != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}
