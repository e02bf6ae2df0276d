package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"synergysphere/internal/auth"
	"synergysphere/internal/config"
	"synergysphere/internal/handler"
	"synergysphere/internal/logger"
	"synergysphere/internal/middleware"
	"synergysphere/internal/storage"
	"synergysphere/internal/ws"
)

type Server struct {
	Engine *gin.Engine
	Store  storage.Store
	Config *config.Config
	Log    *logger.Logger
}

func Init(cfg *config.Config) (*Server, error) {
	log := logger.New("synergysphere")

	store, err := openStore(cfg, log)
	if err != nil {
		return nil, err
	}

	r := gin.Default()

	hub := ws.NewHub(store, log)
	go hub.Run()

	authHandler := handler.NewAuthHandler(store, cfg.JWTSecret,
		time.Duration(cfg.JWTExpiryHours)*time.Hour, !cfg.IsDevelopment(), log)
	projectHandler := handler.NewProjectHandler(store, log)
	taskHandler := handler.NewTaskHandler(store, log)
	teamHandler := handler.NewTeamHandler(store, log)
	notificationHandler := handler.NewNotificationHandler(store)
	analyticsHandler := handler.NewAnalyticsHandler(store, cfg.IsDevelopment(), log)
	chatHandler := handler.NewChatHandler(store)

	api := r.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// Protected routes - one authenticator, chosen at startup
	authorized := api.Group("/")
	authorized.Use(selectAuthMiddleware(cfg, store, log))
	{
		authorized.GET("/auth/me", authHandler.Me)
		authorized.GET("/auth/user", authHandler.Me)

		// Project routes
		authorized.GET("/projects", projectHandler.GetAll)
		authorized.POST("/projects", projectHandler.Create)
		authorized.GET("/projects/:id", projectHandler.GetByID)
		authorized.PUT("/projects/:id", projectHandler.Update)
		authorized.DELETE("/projects/:id", projectHandler.Delete)
		authorized.GET("/projects/:id/tasks", projectHandler.GetTasks)
		authorized.GET("/projects/:id/members", projectHandler.GetMembers)
		authorized.GET("/projects/:id/chat", chatHandler.GetHistory)

		// Task routes
		authorized.GET("/tasks/my", taskHandler.GetMy)
		authorized.POST("/tasks", taskHandler.Create)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)

		// Team routes
		authorized.GET("/team/members", teamHandler.GetMembers)
		authorized.GET("/team/managers", teamHandler.GetManagers)
		authorized.POST("/team/invite", teamHandler.Invite)

		// Notification routes
		authorized.GET("/notifications", notificationHandler.GetAll)
		authorized.PATCH("/notifications/:id/read", notificationHandler.MarkRead)

		// Analytics routes
		authorized.GET("/analytics", analyticsHandler.GetOverview)
		authorized.GET("/analytics/projects", analyticsHandler.GetProjects)
		authorized.GET("/analytics/tasks", analyticsHandler.GetTasks)
	}

	// Real-time chat; sockets carry identity in each message payload
	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Server{
		Engine: r,
		Store:  store,
		Config: cfg,
		Log:    log,
	}, nil
}

// openStore picks the storage backend once. A Postgres failure is fatal in
// production; in development the server starts on the in-memory store in an
// explicitly logged degraded mode.
func openStore(cfg *config.Config, log *logger.Logger) (storage.Store, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		log.Info("using in-memory storage", "driver", cfg.StorageDriver)
		return storage.NewMemoryStore(), nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err == nil {
		err = runMigrations(cfg.DatabaseURL, cfg.MigrationsDir)
	}
	if err != nil {
		if cfg.IsDevelopment() {
			log.Warn("DEGRADED: postgres unavailable, falling back to in-memory storage; state will not survive restarts",
				"error", err)
			return storage.NewMemoryStore(), nil
		}
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	log.Info("connected to postgres")
	return storage.NewPostgresStore(db), nil
}

func runMigrations(databaseURL, dir string) error {
	if dir == "" {
		return nil
	}
	m, err := migrate.New("file://"+dir, databaseURL)
	if err != nil {
		return fmt.Errorf("opening migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

func selectAuthMiddleware(cfg *config.Config, store storage.Store, log *logger.Logger) gin.HandlerFunc {
	switch cfg.AuthMode {
	case config.AuthModeExternal:
		var verifier auth.TokenVerifier
		if cfg.IdentitySecretKey != "" {
			verifier = auth.NewHTTPVerifier(cfg.IdentityAPIURL, cfg.IdentitySecretKey)
		}
		return middleware.ExternalTokenMiddleware(verifier, cfg.IsDevelopment(), store, log)
	case config.AuthModeDev:
		return middleware.DevAuthMiddleware(store, log)
	default:
		return middleware.JWTAuthMiddleware(cfg.JWTSecret)
	}
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Info("server running", "port", s.Config.ServerPort, "authMode", s.Config.AuthMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatal("failed to listen", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatal("server forced to shutdown", "error", err)
	}

	s.Log.Info("server exited properly")
	_ = s.Log.Sync()
}
