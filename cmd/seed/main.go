package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Goutham227347/Ground-Water/internal/config"
	"github.com/Goutham227347/Ground-Water/internal/database"
	"github.com/Goutham227347/Ground-Water/internal/database/migration"
	"github.com/Goutham227347/Ground-Water/internal/logger"
	"github.com/Goutham227347/Ground-Water/internal/repository/postgres"
	"github.com/Goutham227347/Ground-Water/internal/seed"
)

func main() {
	var (
		count      = flag.Int("count", 150, "number of demo stations to generate")
		clearFirst = flag.Bool("clear", false, "delete existing data before seeding")
		randSeed   = flag.Int64("seed", time.Now().UnixNano(), "random seed; fix it to reproduce a catalog")
	)
	flag.Parse()

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

	seeder := seed.New(seed.Deps{
		Stations:  postgres.NewStationPostgres(db),
		Levels:    postgres.NewWaterLevelPostgres(db),
		Resources: postgres.NewResourcePostgres(db),
		Clock:     clockwork.NewRealClock(),
		Rand:      rand.New(rand.NewSource(*randSeed)),
	})

	if *clearFirst {
		logger.Info("clearing existing data")
		if err := seeder.Clear(ctx); err != nil {
			logger.Fatal("failed to clear tables", zap.Error(err))
		}
	}

	res, err := seeder.Run(ctx, *count)
	if err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}

	logger.Info("seeding complete",
		zap.Int("stations_created", res.StationsCreated),
		zap.Int("stations_updated", res.StationsUpdated),
		zap.Int("readings_created", res.ReadingsCreated),
		zap.Int("metrics_computed", res.MetricsComputed))
}
