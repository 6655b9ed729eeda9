package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"research-directory/config"
	deliveryHttp "research-directory/internal/delivery/http"
	"research-directory/internal/delivery/http/handler"
	"research-directory/internal/delivery/http/middleware"
	"research-directory/internal/infrastructure/cache"
	"research-directory/internal/infrastructure/database"
	"research-directory/internal/repository"
	"research-directory/internal/service"
	"research-directory/internal/usecase"
	"research-directory/pkg/jwt"
	"research-directory/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := resolveAdminCredential(cfg); err != nil {
		return nil, err
	}
	if cfg.Session.Secret == "" {
		return nil, errors.New("SESSION_SECRET must be configured")
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize session store
	log := logrus.StandardLogger()
	var sessions service.SessionStore
	switch cfg.Session.Store {
	case "redis":
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		sessions = service.NewRedisSessionStore(redisClient, log)
	case "memory", "":
		sessions = service.NewMemorySessionStore()
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.Session.Store)
	}

	// Initialize all layers
	server, err := initializeServer(cfg, db, sessions, log)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// resolveAdminCredential makes sure a bcrypt hash is available for the login
// check. A plaintext ADMIN_PASSWORD is hashed here so the comparison path
// never sees a literal string.
func resolveAdminCredential(cfg *config.Config) error {
	if cfg.Admin.PasswordHash != "" {
		return nil
	}
	if cfg.Admin.Password == "" {
		return errors.New("admin credential not configured: set ADMIN_PASSWORD_HASH or ADMIN_PASSWORD")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	cfg.Admin.PasswordHash = string(hash)
	cfg.Admin.Password = ""
	return nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, sessions service.SessionStore, log *logrus.Logger) (*http.Server, error) {
	// Initialize session token service
	tokenService := jwt.NewSessionTokenService(cfg.Session)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize photo storage
	photoStorage, err := service.NewPhotoStorage(cfg.Upload, log)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	researcherRepo := repository.NewResearcherRepository()
	profileRepo := repository.NewResearchProfileRepository()

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, cfg.Admin, tokenService, sessions)
	researcherUsecase := usecase.NewResearcherUsecase(db, log, researcherRepo, profileRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	researcherHandler := handler.NewResearcherHandler(researcherUsecase, photoStorage, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService, sessions)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, researcherHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
