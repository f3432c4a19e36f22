package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sarang-2004/DigitalEarth/internal/api"
	"github.com/Sarang-2004/DigitalEarth/internal/climate"
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

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

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

	resolver := geocode.NewCachedResolver(
		geocode.NewNominatim(cfg.Feeds.GeocodeURL, cfg.Feeds.GeocodeUserAgent, cfg.Feeds.RequestTimeout),
		1024,
	)

	engine := ingest.NewEngine(db, db, cfg.Ingest.DedupWindow, metrics, clock)
	mgr := ingest.NewManager(cfg, engine,
		feeds.NewFIRMSClient(cfg.Feeds.FIRMSURL, clientCfg),
		feeds.NewUSGSClient(cfg.Feeds.USGSURL, clientCfg),
		feeds.NewGDACSClient(cfg.Feeds.GDACSURL, clientCfg),
		resolver, metrics, clock,
	)
	mgr.Start(ctx)

	climateSvc := climate.NewService(
		feeds.NewOpenWeatherClient(cfg.Feeds.OpenWeatherAPIKey, clientCfg),
		feeds.NewOpenAQClient(cfg.Feeds.OpenAQURL, clientCfg),
		feeds.NewNASAPowerClient(cfg.Feeds.NASAPowerURL, clientCfg),
		feeds.NewNOAAClient(cfg.Feeds.NOAAURL, clientCfg),
		30*time.Second, clock,
	)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))
	router.Use(api.RateLimitMiddleware(5))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler := api.NewHandler(db, db, climateSvc, mgr)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	mgr.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
