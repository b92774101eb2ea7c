package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/jessupi/jessbook/internal/database"
	"github.com/jessupi/jessbook/internal/models"
	"github.com/jessupi/jessbook/pkg/auth"
)

const stateCookie = "oauthState"

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type OAuthHandler struct {
	db         *database.Database
	jwtManager *auth.JWTManager
	config     *oauth2.Config
	clientURL  string
}

func NewOAuthHandler(db *database.Database, jwtMgr *auth.JWTManager, clientID, clientSecret, redirectURL, clientURL string) *OAuthHandler {
	return &OAuthHandler{
		db:         db,
		jwtManager: jwtMgr,
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		clientURL: clientURL,
	}
}

type googleUserInfo struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// GoogleLogin уводит на страницу согласия Google, nonce против CSRF
// живёт в короткой куке
func (h *OAuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, 600, "/", "", true, true)
	c.Redirect(http.StatusTemporaryRedirect, h.config.AuthCodeURL(state))
}

// GoogleCallback обменивает код на профиль Google и логинит пользователя.
// Незнакомый email получает аккаунт с origin=google без локального пароля.
func (h *OAuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid oauth state"})
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", true, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}

	token, err := h.config.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "code exchange failed"})
		return
	}

	info, err := h.fetchUserInfo(c, token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user info", "details": err.Error()})
		return
	}
	if info.Email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "provider returned no email"})
		return
	}

	user, err := h.findOrCreateUser(info)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in", "details": err.Error()})
		return
	}

	sessionToken, err := h.jwtManager.GenerateSession(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	auth.SetSessionCookie(c, sessionToken)
	c.Redirect(http.StatusTemporaryRedirect, h.clientURL)
}

func (h *OAuthHandler) fetchUserInfo(c *gin.Context, token *oauth2.Token) (*googleUserInfo, error) {
	resp, err := h.config.Client(c.Request.Context(), token).Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// findOrCreateUser линкует провайдерский логин на существующий аккаунт
// по email, иначе регистрирует новый с подпиской на админа
func (h *OAuthHandler) findOrCreateUser(info *googleUserInfo) (*models.User, error) {
	user, err := h.db.FindUserByEmail(info.Email)
	if err == nil {
		return user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	admin, err := h.db.FindAdmin()
	if err != nil {
		return nil, err
	}

	firstName := info.GivenName
	if firstName == "" {
		firstName = info.Email
	}

	user = &models.User{
		FirstName:  firstName,
		LastName:   info.FamilyName,
		Email:      info.Email,
		Role:       models.RoleUser,
		Origin:     models.OriginGoogle,
		ProfilePic: info.Picture,
		CreatedAt:  time.Now(),
	}

	if err := h.db.RegisterUser(user, admin.ID); err != nil {
		return nil, err
	}
	return user, nil
}
