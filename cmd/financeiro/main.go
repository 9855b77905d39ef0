package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/codelab/api-financeiro/internal/adapters/identity"
	"github.com/codelab/api-financeiro/internal/adapters/mail"
	"github.com/codelab/api-financeiro/internal/adapters/report"
	"github.com/codelab/api-financeiro/internal/adapters/storage"
	portssvc "github.com/codelab/api-financeiro/internal/core/ports/services"
	"github.com/codelab/api-financeiro/internal/core/services"
	"github.com/codelab/api-financeiro/internal/dto"
	"github.com/codelab/api-financeiro/internal/handlers"
	"github.com/codelab/api-financeiro/internal/middleware"
	"github.com/codelab/api-financeiro/internal/platform/config"
	"github.com/codelab/api-financeiro/internal/repositories/database/pgsql"
	"github.com/codelab/api-financeiro/pkg/database"
	"github.com/codelab/api-financeiro/pkg/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title API Financeiro
// @version 1.0
// @description Contas a receber, baixas e exportação de relatórios.

// @BasePath /api/v1/financeiro
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.Setup(cfg.IsProduction)

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	collab, cleanup, err := buildCollaborators(cfg, logger)
	if err != nil {
		logger.Error("Failed to set up collaborators", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	repos := pgsql.NewRepositoryContainer(dbPool)
	container := services.NewServiceContainer(repos.ContaReceber, repos.ContaReceberBaixa, collab)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	dto.RegisterValidations()

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	limiterInstance, err := buildRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to build rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiterInstance))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildCollaborators wires the export pipeline's external collaborators.
// The returned cleanup closes the mail channel connection.
func buildCollaborators(cfg *config.Config, logger *slog.Logger) (services.Collaborators, func(), error) {
	renderer, err := report.NewExcelizeRenderer(cfg.ReportDir)
	if err != nil {
		return services.Collaborators{}, nil, err
	}

	publisher, err := mail.NewRedisPublisher(cfg.RedisURL, cfg.MailQueue)
	if err != nil {
		return services.Collaborators{}, nil, err
	}

	var archiver portssvc.ReportArchiver
	if cfg.ArchiveEnabled {
		minioArchiver, err := storage.NewMinioArchiver(context.Background(), storage.ConnectionInfo{
			Endpoint:  cfg.ArchiveEndpoint,
			AccessKey: cfg.ArchiveAccessKey,
			SecretKey: cfg.ArchiveSecretKey,
			Region:    cfg.ArchiveRegion,
			Bucket:    cfg.ArchiveBucket,
			UseSSL:    cfg.ArchiveUseSSL,
		})
		if err != nil {
			publisher.Close()
			return services.Collaborators{}, nil, err
		}
		archiver = minioArchiver
		logger.Info("Report archiving enabled", slog.String("bucket", cfg.ArchiveBucket))
	}

	collab := services.Collaborators{
		Renderer: renderer,
		Users:    identity.NewHTTPResolver(cfg.UsuarioAPIURL),
		Mail:     publisher,
		Archiver: archiver,
	}
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Error closing mail publisher", slog.String("error", err.Error()))
		}
	}
	return collab, cleanup, nil
}

func buildRateLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	return limiter.New(memorystore.NewStore(), rate), nil
}

// runMigrations applies all pending "up" migrations before the server
// starts, over a temporary database/sql connection compatible with the
// pgx pool.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
