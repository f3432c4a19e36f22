// disaster-ingest runs only the disaster ingestion loop, for deployments
// where ingestion is scheduled separately from the API server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/Sarang-2004/DigitalEarth/internal/config"
	"github.com/Sarang-2004/DigitalEarth/internal/feeds"
	"github.com/Sarang-2004/DigitalEarth/internal/geocode"
	"github.com/Sarang-2004/DigitalEarth/internal/ingest"
	"github.com/Sarang-2004/DigitalEarth/internal/logging"
	"github.com/Sarang-2004/DigitalEarth/internal/observability"
	"github.com/Sarang-2004/DigitalEarth/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	// This binary only ingests disasters.
	cfg.Ingest.FireEnabled = false
	cfg.Ingest.DisasterEnabled = true

	slog.Info("Disaster ingestion starting", "interval", cfg.Ingest.DisasterInterval, "retry_backoff", cfg.Ingest.RetryBackoff)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()
	clientCfg := feeds.DefaultClientConfig(cfg.Feeds.RequestTimeout)

	engine := ingest.NewEngine(db, db, cfg.Ingest.DedupWindow, metrics, clock)
	mgr := ingest.NewManager(cfg, engine,
		feeds.NewFIRMSClient(cfg.Feeds.FIRMSURL, clientCfg),
		feeds.NewUSGSClient(cfg.Feeds.USGSURL, clientCfg),
		feeds.NewGDACSClient(cfg.Feeds.GDACSURL, clientCfg),
		geocode.Noop{}, metrics, clock,
	)
	mgr.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")
	cancel()
	mgr.Stop()
	slog.Info("shutdown complete")
}
