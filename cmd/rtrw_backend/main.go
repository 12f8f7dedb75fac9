package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/wargaku/rtrw_portal_app/internal/adapters/delivery"
	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
	"github.com/wargaku/rtrw_portal_app/internal/core/services"
	"github.com/wargaku/rtrw_portal_app/internal/handlers"
	"github.com/wargaku/rtrw_portal_app/internal/middleware"
	"github.com/wargaku/rtrw_portal_app/internal/platform/config"
	"github.com/wargaku/rtrw_portal_app/internal/platform/metrics"
	"github.com/wargaku/rtrw_portal_app/internal/repositories/database/pgsql"
	"github.com/wargaku/rtrw_portal_app/pkg/database"
)

// @title Portal RT/RW Backend API
// @version 1.0
// @description Verification and approval workflow backend for the RT/RW administration portal.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	runMigrations(cfg, logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.RateLimit(newRateLimiter(cfg, logger)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, buildServices(dbPool, logger, cfg))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires repositories into services and returns the container
// consumed by route registration.
func buildServices(dbPool *pgxpool.Pool, logger *slog.Logger, cfg *config.Config) *portssvc.ServiceContainer {
	accountRepo := pgsql.NewAccountRepository(dbPool)
	changeRepo := pgsql.NewChangeRequestRepository(dbPool)
	paymentRepo := pgsql.NewPaymentRepository(dbPool)
	feedbackRepo := pgsql.NewFeedbackRepository(dbPool)
	notificationRepo := pgsql.NewNotificationRepository(dbPool)

	m := metrics.New()

	notificationSvc := services.NewNotificationService(notificationRepo, delivery.NewLogSender(logger), m)
	transitionSvc := services.NewTransitionService(accountRepo, changeRepo, paymentRepo, feedbackRepo, notificationSvc, m)

	policy := services.AutoApprovalPolicy{NationalIDLength: cfg.NationalIDLength}
	taskSvc := services.NewTaskService(accountRepo, changeRepo, paymentRepo, feedbackRepo, transitionSvc, policy)

	return &portssvc.ServiceContainer{
		Account:       services.NewAccountService(accountRepo),
		ChangeRequest: services.NewChangeRequestService(changeRepo, accountRepo),
		Payment:       services.NewPaymentService(paymentRepo, accountRepo),
		Feedback:      services.NewFeedbackService(feedbackRepo, accountRepo),
		Task:          taskSvc,
		Transition:    transitionSvc,
		Notification:  notificationSvc,
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return corsCfg
}

func newRateLimiter(cfg *config.Config, logger *slog.Logger) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	return limiter.New(memorystore.NewStore(), rate)
}

// runMigrations applies all pending up migrations using a temporary
// database/sql connection compatible with the main pgx pool.
func runMigrations(cfg *config.Config, logger *slog.Logger) {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		os.Exit(1)
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		os.Exit(1)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
}
