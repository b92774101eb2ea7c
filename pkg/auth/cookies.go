package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie имя куки сессионного токена
	SessionCookie = "accessToken"
	// ResetCookie имя куки токена восстановления пароля
	ResetCookie = "resetToken"
)

// SetSessionCookie ставит HTTP-only cross-site куку с сессионным токеном
func SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(SessionCookie, token, int(SessionTTL.Seconds()), "/", "", true, true)
}

// ClearSessionCookie сбрасывает сессионную куку теми же атрибутами
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", true, true)
}

// SetResetCookie ставит куку токена восстановления, отдельную от сессионной
func SetResetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(ResetCookie, token, int(ResetTTL.Seconds()), "/", "", true, true)
}

// ClearResetCookie сбрасывает куку восстановления
func ClearResetCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(ResetCookie, "", -1, "/", "", true, true)
}
