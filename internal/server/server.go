package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jessupi/jessbook/internal/database"
	"github.com/jessupi/jessbook/internal/handlers"
	"github.com/jessupi/jessbook/internal/logger"
	"github.com/jessupi/jessbook/internal/services"
	ws "github.com/jessupi/jessbook/internal/websocket"
	"github.com/jessupi/jessbook/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			logrus.Info(".env not found, using environment variables")
		}
	}

	logger.InitLogger()

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		logrus.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		logrus.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(os.Getenv("JWT_SECRET"))

	var mailer services.Mailer
	if os.Getenv("SMTP_HOST") != "" {
		mailer, err = services.NewSMTPMailerFromEnv()
		if err != nil {
			logrus.Fatalf("mailer setup failed: %v", err)
		}
	} else {
		logrus.Warn("SMTP is not configured, password reset emails go to the log")
		mailer = services.LogMailer{}
	}

	clientURL := os.Getenv("CLIENT_URL")
	if clientURL == "" {
		clientURL = "http://localhost:3000"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	hub := ws.NewHub()

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb, mailer, clientURL)
	oauthH := handlers.NewOAuthHandler(
		dbConn, jwtMgr,
		os.Getenv("GOOGLE_CLIENT_ID"),
		os.Getenv("GOOGLE_CLIENT_SECRET"),
		os.Getenv("OAUTH_REDIRECT_URL"),
		clientURL,
	)
	userH := handlers.NewUserHandler(dbConn)
	storyH := handlers.NewStoryHandler(dbConn, hub)
	postH := handlers.NewPostHandler(dbConn, hub)
	commentH := handlers.NewCommentHandler(dbConn)
	likeH := handlers.NewLikeHandler(dbConn)
	relationshipH := handlers.NewRelationshipHandler(dbConn)
	adminH := handlers.NewAdminHandler(dbConn)
	feedH := handlers.NewFeedHandler(hub)
	uploadH, err := handlers.NewUploadHandler(uploadDir)
	if err != nil {
		logrus.Fatalf("upload dir setup failed: %v", err)
	}

	router := gin.Default()
	APIEndpoints(router, &Handlers{
		Auth:         authH,
		OAuth:        oauthH,
		User:         userH,
		Story:        storyH,
		Post:         postH,
		Comment:      commentH,
		Like:         likeH,
		Relationship: relationshipH,
		Admin:        adminH,
		Feed:         feedH,
		Upload:       uploadH,
	}, jwtMgr, rdb)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
	}
}

// Run поднимает сервер и корректно гасит его по SIGINT/SIGTERM
func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go s.Hub.Run()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.Router,
	}

	go func() {
		logrus.Infof("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server run error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("server shutdown: %v", err)
	}

	s.Hub.Stop()
	if err := s.DB.Close(); err != nil {
		logrus.Errorf("db close: %v", err)
	}
	if err := s.Redis.Close(); err != nil {
		logrus.Errorf("redis close: %v", err)
	}
}
