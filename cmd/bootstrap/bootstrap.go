package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"patient-records-api/config"
	deliveryHttp "patient-records-api/internal/delivery/http"
	"patient-records-api/internal/delivery/http/handler"
	"patient-records-api/internal/delivery/http/middleware"
	"patient-records-api/internal/infrastructure/database"
	"patient-records-api/internal/infrastructure/logger"
	"patient-records-api/internal/repository"
	"patient-records-api/internal/service"
	"patient-records-api/internal/usecase"
	"patient-records-api/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

// Replaced in tests
var (
	setupLogger     = logger.Setup
	openDatabase    = database.NewPostgresConnection
	migrateDatabase = database.AutoMigrate
)

// App holds all dependencies for the application
type App struct {
	Config    *config.Config
	Log       *logrus.Logger
	DB        *gorm.DB
	Server    *http.Server
	logCloser io.Closer
}

// New creates a new App instance with all dependencies initialized
func New(configPath string) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	log, logCloser := setupLogger(cfg.Log)
	app.Log = log
	app.logCloser = logCloser
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := openDatabase(cfg.DB, gormLogLevel(cfg.App))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	if cfg.DB.AutoMigrate {
		if err := migrateDatabase(db); err != nil {
			app.Close()
			return nil, err
		}
	}

	// Initialize all layers
	app.Server = initializeServer(cfg, db, log)

	return app, nil
}

// gormLogLevel keeps SQL statement logging out of production
func gormLogLevel(cfg config.AppConfig) gormLogger.LogLevel {
	if cfg.IsProduction() {
		return gormLogger.Warn
	}
	return gormLogger.Info
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, log *logrus.Logger) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	patientRepo := repository.NewPatientRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo, visitRepo, auditService)
	visitUsecase := usecase.NewVisitUsecase(log, patientRepo, visitRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	visitHandler := handler.NewVisitHandler(visitUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize middleware
	requestIDMiddleware := middleware.NewRequestIDMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	metricsMiddleware := middleware.NewMetricsMiddleware(registry)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSAllowedOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		patientHandler,
		visitHandler,
		auditLogHandler,
		requestIDMiddleware,
		loggingMiddleware,
		metricsMiddleware,
		corsMiddleware,
		registry,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (app *App) Run(ctx context.Context) error {
	defer app.Close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.Log.Info("Shutting down server...")

		// Create shutdown context with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			app.Log.Errorf("Server forced to shutdown: %v", err)
			return err
		}
		return nil
	})

	err := g.Wait()
	app.Log.Info("Server shutdown complete")
	return err
}

// Close closes all connections (database, log file)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.logCloser != nil {
		app.logCloser.Close()
	}
}
