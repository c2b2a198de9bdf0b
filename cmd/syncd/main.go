package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Goutham227347/Ground-Water/internal/archive"
	"github.com/Goutham227347/Ground-Water/internal/cgwb"
	"github.com/Goutham227347/Ground-Water/internal/config"
	"github.com/Goutham227347/Ground-Water/internal/database"
	"github.com/Goutham227347/Ground-Water/internal/database/migration"
	"github.com/Goutham227347/Ground-Water/internal/events"
	"github.com/Goutham227347/Ground-Water/internal/logger"
	"github.com/Goutham227347/Ground-Water/internal/observability"
	"github.com/Goutham227347/Ground-Water/internal/repository/postgres"
	"github.com/Goutham227347/Ground-Water/internal/service"
	"github.com/Goutham227347/Ground-Water/internal/storage"
)

func main() {
	var (
		station    = flag.String("station", "", "sync a single station by code")
		states     = flag.String("states", "", "comma-separated states whose active stations are synced")
		all        = flag.Bool("all", false, "sync every active station")
		recent     = flag.Bool("recent", false, "use the short recent window instead of the full year")
		doImport   = flag.Bool("import", false, "import the station catalog instead of syncing readings")
		state      = flag.String("state", "", "with -import: narrow the catalog to one state")
		district   = flag.String("district", "", "with -import: narrow the catalog to one district")
		interval   = flag.Duration("interval", time.Hour, "with -continuous: time between runs")
		continuous = flag.Bool("continuous", false, "keep running on a schedule until interrupted")
	)
	flag.Parse()

	if !*doImport && *station == "" && *states == "" && !*all {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		logger.Fatal("failed to run schema migration", zap.Error(err))
	}

	archiver := archive.Disabled()
	if cfg.Archive.Enabled {
		objStore, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			logger.Fatal("failed to initialize object storage", zap.Error(err))
		}
		archiver = archive.New(objStore, cfg.Archive.Prefix)
	}

	publisher := events.Publisher(events.NoopPublisher{})
	if cfg.Kafka.Enabled {
		kp := events.NewKafkaPublisher(cfg.Kafka)
		defer kp.Close()
		publisher = kp
	}

	metrics, err := observability.NewMetrics(prometheus.NewRegistry())
	if err != nil {
		logger.Fatal("failed to register sync metrics", zap.Error(err))
	}

	syncSvc := service.NewSyncService(service.SyncDeps{
		Stations:  postgres.NewStationPostgres(db),
		Levels:    postgres.NewWaterLevelPostgres(db),
		Resources: postgres.NewResourcePostgres(db),
		Client:    cgwb.NewHTTPClient(cfg.CGWB),
		Archiver:  archiver,
		Publisher: publisher,
		Metrics:   metrics,
		Clock:     clockwork.NewRealClock(),
		Config:    cfg.Sync,
	})

	// The daemon defaults to the full-year window; -recent narrows it to the
	// configured short window for frequent scheduled runs.
	window := cfg.Sync.PeriodDays
	if *recent {
		window = cfg.Sync.RecentPeriodDays
	}

	runOnce := func(ctx context.Context) error {
		switch {
		case *doImport:
			res, err := syncSvc.ImportStations(ctx, *state, *district)
			if err != nil {
				return err
			}
			logger.Info("catalog import finished",
				zap.Int("imported", res.Imported), zap.Int("updated", res.Updated))
		case *station != "":
			res, err := syncSvc.SyncStation(ctx, *station, window)
			if err != nil {
				return err
			}
			logger.Info("station sync finished",
				zap.String("station_code", res.StationCode),
				zap.String("status", res.Status),
				zap.Int("records", res.Records))
		case *states != "":
			res, err := syncSvc.SyncByStates(ctx, splitList(*states), window)
			if err != nil {
				return err
			}
			logBulk(res)
		default:
			res, err := syncSvc.SyncAll(ctx, window)
			if err != nil {
				return err
			}
			logBulk(res)
		}
		return nil
	}

	if err := runOnce(ctx); err != nil {
		if !*continuous {
			logger.Fatal("sync failed", zap.Error(err))
		}
		logger.Error("sync failed", zap.Error(err))
	}

	if !*continuous {
		return
	}

	c := cron.New()
	if _, err := c.AddFunc("@every "+interval.String(), func() {
		if err := runOnce(context.Background()); err != nil {
			logger.Error("scheduled sync failed", zap.Error(err))
		}
	}); err != nil {
		logger.Fatal("failed to schedule sync", zap.Error(err))
	}
	c.Start()
	logger.Info("sync daemon scheduled", zap.Duration("interval", *interval))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Let an in-flight run finish before exiting.
	<-c.Stop().Done()
	logger.Info("sync daemon stopped")
}

func logBulk(res *service.SyncAllResult) {
	logger.Info("bulk sync finished",
		zap.String("message", res.Message),
		zap.Int("records", res.TotalRecordsSynced),
		zap.Int("successful", res.SuccessfulStations),
		zap.Int("failed", res.FailedStations))
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
