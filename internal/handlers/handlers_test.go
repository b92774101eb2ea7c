package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jessupi/jessbook/internal/database"
	"github.com/jessupi/jessbook/internal/handlers"
	"github.com/jessupi/jessbook/internal/models"
	"github.com/jessupi/jessbook/internal/server"
	ws "github.com/jessupi/jessbook/internal/websocket"
	"github.com/jessupi/jessbook/pkg/auth"
)

const testSecret = "test-secret"

type stubMailer struct {
	to   string
	link string
	err  error
}

func (m *stubMailer) SendPasswordReset(to, resetLink string) error {
	m.to = to
	m.link = resetLink
	return m.err
}

type env struct {
	router *gin.Engine
	db     *database.Database
	jwt    *auth.JWTManager
	mailer *stubMailer
}

// newTestEnv собирает полный роутер поверх in-memory sqlite и miniredis
func newTestEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(gdb))
	db := database.NewDatabase(gdb)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	jwtMgr := auth.NewJWTManager(testSecret)
	mailer := &stubMailer{}

	hub := ws.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	uploadH, err := handlers.NewUploadHandler(t.TempDir())
	require.NoError(t, err)

	router := gin.New()
	server.APIEndpoints(router, &server.Handlers{
		Auth:         handlers.NewAuthHandler(db, jwtMgr, rdb, mailer, "http://client.test"),
		OAuth:        handlers.NewOAuthHandler(db, jwtMgr, "id", "secret", "http://server.test/auth/google/callback", "http://client.test"),
		User:         handlers.NewUserHandler(db),
		Story:        handlers.NewStoryHandler(db, hub),
		Post:         handlers.NewPostHandler(db, hub),
		Comment:      handlers.NewCommentHandler(db),
		Like:         handlers.NewLikeHandler(db),
		Relationship: handlers.NewRelationshipHandler(db),
		Admin:        handlers.NewAdminHandler(db),
		Feed:         handlers.NewFeedHandler(hub),
		Upload:       uploadH,
	}, jwtMgr, rdb)

	return &env{router: router, db: db, jwt: jwtMgr, mailer: mailer}
}

func (e *env) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (e *env) seedAdmin(t *testing.T) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("admin1!pass")
	require.NoError(t, err)
	admin := &models.User{
		FirstName:    "Site",
		LastName:     "Admin",
		Email:        "admin@jessbook.io",
		PasswordHash: &hash,
		Role:         models.RoleAdmin,
		Origin:       models.OriginLocal,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, e.db.SaveUser(admin))
	return admin
}

func registerBody(email string) map[string]string {
	return map[string]string{
		"firstName":   "Jess",
		"lastName":    "Doe",
		"email":       email,
		"password":    "pass1!word",
		"confirmPswd": "pass1!word",
	}
}

// register + login, возвращает сессионную куку и id пользователя
func (e *env) registerAndLogin(t *testing.T, email string) (*http.Cookie, uint) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/auth/register", registerBody(email))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email": email, "password": "pass1!word",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeJSON(t, rec)
	return cookieByName(t, rec, auth.SessionCookie), uint(body["id"].(float64))
}
