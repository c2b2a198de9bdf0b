package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Goutham227347/Ground-Water/docs"
	"github.com/Goutham227347/Ground-Water/internal/archive"
	"github.com/Goutham227347/Ground-Water/internal/cgwb"
	"github.com/Goutham227347/Ground-Water/internal/config"
	"github.com/Goutham227347/Ground-Water/internal/database"
	"github.com/Goutham227347/Ground-Water/internal/database/migration"
	"github.com/Goutham227347/Ground-Water/internal/events"
	handlers "github.com/Goutham227347/Ground-Water/internal/http/handler"
	"github.com/Goutham227347/Ground-Water/internal/http/middleware"
	"github.com/Goutham227347/Ground-Water/internal/logger"
	"github.com/Goutham227347/Ground-Water/internal/observability"
	"github.com/Goutham227347/Ground-Water/internal/otel"
	"github.com/Goutham227347/Ground-Water/internal/repository/postgres"
	"github.com/Goutham227347/Ground-Water/internal/service"
	"github.com/Goutham227347/Ground-Water/internal/storage"
)

// @title Groundwater DWLR API
// @version 1.0
// @description Real-time groundwater resource evaluation using DWLR data. Endpoint catalog at /api/info.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer shutdownTracing(ctx)

	// PostgreSQL connection with pooling via database/sql
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		logger.Fatal("failed to run schema migration", zap.Error(err))
	}

	// Raw payload archiving needs object storage; without it syncs still run.
	archiver := archive.Disabled()
	if cfg.Archive.Enabled {
		objStore, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			logger.Fatal("failed to initialize object storage", zap.Error(err))
		}
		archiver = archive.New(objStore, cfg.Archive.Prefix)
	}

	// Alert publishing is a feature flag; without a broker the no-op
	// publisher swallows events.
	publisher := events.Publisher(events.NoopPublisher{})
	if cfg.Kafka.Enabled {
		kp := events.NewKafkaPublisher(cfg.Kafka)
		defer kp.Close()
		publisher = kp
	}

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("failed to register sync metrics", zap.Error(err))
	}

	stationRepo := postgres.NewStationPostgres(db)
	levelRepo := postgres.NewWaterLevelPostgres(db)
	resourceRepo := postgres.NewResourcePostgres(db)

	clock := clockwork.NewRealClock()
	client := cgwb.NewHTTPClient(cfg.CGWB)

	svcs := handlers.Services{
		Stations:    service.NewStationService(stationRepo, levelRepo, resourceRepo),
		WaterLevels: service.NewWaterLevelService(stationRepo, levelRepo),
		Resources:   service.NewResourceService(stationRepo, levelRepo, resourceRepo, clock),
		Sync: service.NewSyncService(service.SyncDeps{
			Stations:  stationRepo,
			Levels:    levelRepo,
			Resources: resourceRepo,
			Client:    client,
			Archiver:  archiver,
			Publisher: publisher,
			Metrics:   metrics,
			Clock:     clock,
			Config:    cfg.Sync,
		}),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("failed to register http metrics", zap.Error(err))
	}

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Version(handlers.APIVersion))
	// Tracing wraps the logger so request logs carry trace IDs.
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger())
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, db, svcs)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		host := c.Get("Host")
		if host == "" {
			host = cfg.AppHost
		}
		docs.SwaggerInfo.Host = host
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	logger.Info("starting api server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
