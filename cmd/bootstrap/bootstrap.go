package bootstrap

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-surgical-scheduling/config"
	deliveryhttp "go-surgical-scheduling/internal/delivery/http"
	"go-surgical-scheduling/internal/delivery/http/handler"
	"go-surgical-scheduling/internal/delivery/http/middleware"
	"go-surgical-scheduling/internal/infrastructure/cache"
	"go-surgical-scheduling/internal/infrastructure/database"
	"go-surgical-scheduling/internal/repository"
	"go-surgical-scheduling/internal/service"
	"go-surgical-scheduling/internal/usecase"
	"go-surgical-scheduling/pkg/jwt"
	"go-surgical-scheduling/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type App struct {
	config *config.Config
	log    *logrus.Logger
	db     *gorm.DB
	redis  *redis.Client
	server *http.Server
}

func NewApp() (*App, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.App.Env == "production" {
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetLevel(logrus.DebugLevel)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}

	// Repositories
	recordRepo := repository.NewScheduleRecordRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Services
	jwtService := jwt.NewJWTService(cfg.JWT)
	auditService := service.NewAuditService(db, log, auditLogRepo)
	recordCache := service.NewRecordCacheService(redisClient, log)

	// Usecases
	slotEditorUsecase := usecase.NewSlotEditorUsecase(db, log, recordRepo, auditService, recordCache)
	replicationUsecase := usecase.NewReplicationUsecase(db, log, recordRepo, auditService, recordCache)
	transferUsecase := usecase.NewPatientTransferUsecase(db, log, recordRepo, auditService, recordCache)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Handlers
	customValidator := validator.NewValidator()
	gradeHandler := handler.NewGradeHandler(slotEditorUsecase, customValidator)
	replicationHandler := handler.NewReplicationHandler(replicationUsecase, customValidator)
	transferHandler := handler.NewTransferHandler(transferUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	router := deliveryhttp.NewRouter(
		gradeHandler,
		replicationHandler,
		transferHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		config: cfg,
		log:    log,
		db:     db,
		redis:  redisClient,
		server: server,
	}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal arrives.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("Server starting on port %s", a.config.App.Port)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.log.Infof("Received signal %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return err
	}

	a.log.Info("Server stopped")
	return nil
}

// Close releases the database and cache connections.
func (a *App) Close() {
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Warnf("Failed to close database connection: %+v", err)
		}
	}
	if err := a.redis.Close(); err != nil {
		a.log.Warnf("Failed to close Redis connection: %+v", err)
	}
}
