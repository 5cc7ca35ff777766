package cmd

import (
	"context"
	"log"

	"moneyball/core/config"
	"moneyball/core/database"
	"moneyball/core/logger"
	"moneyball/core/storage"
	"moneyball/feature/ingest"
	"moneyball/feature/ingest/provider"
	"moneyball/feature/sports"
	"moneyball/feature/sports/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the wired application for the CLI commands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	client  *provider.Client
	service *ingest.Service
}

// bootstrap loads configuration and wires the full ingestion stack. The
// database is mandatory; the payload archive is attached only when storage
// is enabled.
func bootstrap() *app {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logg)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		logg.Fatal("Failed to migrate schema", zap.Error(err))
	}

	client := provider.NewClient(cfg.Providers, logg)

	if cfg.Storage.Enabled {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		archiver := ingest.NewArchiver(store, cfg.Storage.Bucket, logg)
		if err := archiver.EnsureBucket(context.Background()); err != nil {
			logg.Fatal("Failed to prepare archive bucket", zap.Error(err))
		}
		// All feeds are NBA for now; the hook key follows the sport once
		// more leagues are wired.
		client.SetPayloadHook(archiver.HookFor("nba"))
		logg.Info("Payload archiving enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	service := ingest.NewService(ingest.Deps{
		Stores:      func() ingest.Store { return sports.NewStore(db) },
		Teams:       client,
		Schedule:    client,
		BoxScores:   client,
		EventOdds:   client,
		MarketOdds:  client,
		Logger:      logg,
		DaysBack:    cfg.Scheduler.DaysBack,
		DaysForward: cfg.Scheduler.DaysForward,
	})

	return &app{cfg: cfg, logger: logg, db: db, client: client, service: service}
}
