package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"solidgo/internal/auth"
	"solidgo/internal/config"
	"solidgo/internal/database"
	"solidgo/internal/database/migration"
	handlers "solidgo/internal/http/handler"
	"solidgo/internal/http/middleware"
	"solidgo/internal/logging"
	otelinit "solidgo/internal/otel"
	"solidgo/internal/repository/postgres"
	"solidgo/internal/service"
	"solidgo/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	appLog, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer appLog.Close()

	ctx := context.Background()

	// Initialize tracing (no-op when OTEL_SDK_DISABLED=true)
	shutdownTracing, err := otelinit.Init(ctx, appLog)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, appLog); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize auth primitives, repositories, and services
	issuer, err := auth.NewTokenIssuer(cfg.Auth)
	if err != nil {
		log.Fatalf("failed to initialize token issuer: %v", err)
	}
	userRepo := postgres.NewUserPostgres(db)
	userSvc := service.NewUserService(userRepo, auth.NewHasher(cfg.Auth.BcryptCost), issuer)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// Structured request logs through the application logger
	app.Use(middleware.RequestLogger(appLog))

	promMw, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMw.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, userSvc, issuer)

	addr := ":" + cfg.Port
	appLog.Info("server_starting", map[string]any{"addr": addr})

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// buildLogger assembles the sink stack from config: stdout always, a file
// sink when LOG_FILE is set, and an object storage sink when enabled.
func buildLogger(cfg *config.AppConfig) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	sinks := []logging.Sink{logging.NewConsoleSink(os.Stdout)}

	if cfg.Log.FilePath != "" {
		fileSink, err := logging.NewFileSink(cfg.Log.FilePath)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fileSink)
	}

	if cfg.Log.ObjectSinkEnabled {
		objStore, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, logging.NewObjectSink(objStore, logging.ObjectSinkOptions{
			KeyPrefix:     cfg.Log.ObjectKeyPrefix,
			FlushCount:    cfg.Log.ObjectFlushCount,
			FlushInterval: secondsToDuration(cfg.Log.ObjectFlushIntervalSec),
		}))
	}

	if len(sinks) == 1 {
		return logging.New(level, sinks[0]), nil
	}
	return logging.New(level, logging.NewMultiSink(sinks...)), nil
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}
