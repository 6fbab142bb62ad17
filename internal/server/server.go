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

	"jobsite/internal/cache"
	"jobsite/internal/config"
	"jobsite/internal/handler"
	"jobsite/internal/middleware"
	"jobsite/internal/notify"
	"jobsite/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
}

func Init(cfg *config.Config) (*Server, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("❌ failed to create logger: %w", err)
	}

	// Apply schema migrations before opening GORM
	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	if err := runMigrations(dbURL); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}
	logger.Info("✅ Migrations applied")

	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	logger.Info("✅ Connected to database")

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	siteRepo := repository.NewJobSiteRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	// Notification fan-out
	hub := notify.NewHub(logger)
	dispatcher := notify.NewDispatcher(hub, userRepo, logger)

	// Optional listing cache
	var taskCache handler.TaskCache
	if cfg.RedisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("⚠️  Redis unavailable, task cache disabled", zap.Error(err))
		} else {
			taskCache = cache.NewTaskListCache(rdb, time.Minute, logger)
			logger.Info("✅ Connected to redis")
		}
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userRepo)
	userHandler := handler.NewUserHandler(userRepo, assignmentRepo)
	siteHandler := handler.NewJobSiteHandler(siteRepo, assignmentRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, siteRepo, userRepo, dispatcher, taskCache)
	noteHandler := handler.NewNoteHandler(noteRepo, taskRepo, dispatcher)
	wsHandler := handler.NewWSHandler(hub, logger)

	// Public routes
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/ws", wsHandler.Serve)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		authorized.GET("/users", middleware.RequireAdmin(), userHandler.GetAll)
		authorized.GET("/users/:id/job-sites", userHandler.GetJobSites)

		// Job site routes
		authorized.POST("/job-sites", middleware.RequireAdmin(), siteHandler.Create)
		authorized.GET("/job-sites", siteHandler.GetAll)
		authorized.PUT("/job-sites/:id", middleware.RequireAdmin(), siteHandler.Update)
		authorized.DELETE("/job-sites/:id", middleware.RequireAdmin(), siteHandler.Delete)
		authorized.POST("/job-sites/:id/assign-user", middleware.RequireAdmin(), siteHandler.AssignUser)
		authorized.DELETE("/job-sites/:id/assign-user/:user_id", middleware.RequireAdmin(), siteHandler.UnassignUser)

		// Task routes
		authorized.POST("/tasks", middleware.RequireAdmin(), taskHandler.Create)
		authorized.GET("/tasks", taskHandler.List)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", middleware.RequireAdmin(), taskHandler.Delete)

		// Task note routes
		authorized.POST("/tasks/:id/notes", noteHandler.Create)
		authorized.GET("/tasks/:id/notes", noteHandler.GetByTask)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Log:    logger,
	}, nil
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Info("🚀 Server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatal("❌ Failed to listen", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatal("❌ Server forced to shutdown", zap.Error(err))
	}

	s.Log.Info("✅ Server exited properly")
	_ = s.Log.Sync()
}
