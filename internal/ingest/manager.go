package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Sarang-2004/DigitalEarth/internal/config"
	"github.com/Sarang-2004/DigitalEarth/internal/feeds"
	"github.com/Sarang-2004/DigitalEarth/internal/geocode"
	"github.com/Sarang-2004/DigitalEarth/internal/models"
	"github.com/Sarang-2004/DigitalEarth/internal/normalize"
	"github.com/Sarang-2004/DigitalEarth/internal/observability"
	"github.com/Sarang-2004/DigitalEarth/internal/worker"
)

// Feed client surfaces the manager needs; the concrete clients in
// internal/feeds satisfy them.
type FireFeed interface {
	Fetch(ctx context.Context) ([]string, error)
}

type QuakeFeed interface {
	Fetch(ctx context.Context) (*feeds.QuakeFeed, error)
}

type RSSFeed interface {
	Fetch(ctx context.Context) ([]feeds.GDACSItem, error)
}

// CycleStats summarizes one fire ingestion cycle.
type CycleStats struct {
	Processed int `json:"processed"`
	Errors    int `json:"errors"`
}

// Manager drives the periodic ingestion cycles. Each domain runs on its own
// loop; a failed cycle shortens the next wait to the retry backoff instead
// of stopping the loop.
type Manager struct {
	cfg      *config.Config
	engine   *Engine
	firms    FireFeed
	usgs     QuakeFeed
	gdacs    RSSFeed
	resolver geocode.Resolver
	metrics  *observability.Metrics
	clock    clockwork.Clock
	wg       sync.WaitGroup
}

func NewManager(cfg *config.Config, engine *Engine, firms FireFeed, usgs QuakeFeed, gdacs RSSFeed, resolver geocode.Resolver, metrics *observability.Metrics, clock clockwork.Clock) *Manager {
	return &Manager{
		cfg:      cfg,
		engine:   engine,
		firms:    firms,
		usgs:     usgs,
		gdacs:    gdacs,
		resolver: resolver,
		metrics:  metrics,
		clock:    clock,
	}
}

func (m *Manager) Start(ctx context.Context) {
	if m.cfg.Ingest.DisasterEnabled {
		m.wg.Add(1)
		go m.runLoop(ctx, "disasters", m.cfg.Ingest.DisasterInterval, m.RunDisasterCycle)
	}

	if m.cfg.Ingest.FireEnabled {
		m.wg.Add(1)
		go m.runLoop(ctx, "fires", m.cfg.Ingest.FireInterval, func(ctx context.Context) error {
			_, err := m.RunFireCycle(ctx)
			return err
		})
	}
}

func (m *Manager) Stop() {
	m.wg.Wait()
	slog.Info("ingestion manager stopped")
}

func (m *Manager) runLoop(ctx context.Context, domain string, interval time.Duration, run func(context.Context) error) {
	defer m.wg.Done()
	slog.Info("starting ingestion loop", "domain", domain, "interval", interval)

	for {
		wait := interval
		if err := runSafely(ctx, run); err != nil {
			wait = m.cfg.Ingest.RetryBackoff
			slog.Error("ingestion cycle failed", "domain", domain, "error", err, "retry_in", wait)
		}

		select {
		case <-ctx.Done():
			slog.Info("ingestion loop shutting down", "domain", domain)
			return
		case <-m.clock.After(wait):
		}
	}
}

// runSafely converts a panicking cycle into an error so the loop backs off
// instead of crashing the process.
func runSafely(ctx context.Context, run func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ingestion cycle panicked: %v", r)
		}
	}()
	return run(ctx)
}

// RunFireCycle fetches the hotspot CSV, geocodes rows on the worker pool,
// and stores the results sequentially so the dedup window sees every insert.
func (m *Manager) RunFireCycle(ctx context.Context) (CycleStats, error) {
	lines, err := m.firms.Fetch(ctx)
	if err != nil {
		m.metrics.FetchFailures.WithLabelValues("firms").Inc()
		return CycleStats{}, err
	}
	slog.Info("fetched fire hotspot rows", "count", len(lines))

	var parseErrors atomic.Int64
	out := make(chan *models.FireEvent, m.cfg.Worker.BufferSize)

	pool := worker.NewPool(m.cfg.Worker.Count, m.cfg.Worker.BufferSize, func(ctx context.Context, job worker.Job) error {
		line := job.(string)
		row, err := normalize.ParseFireRow(line)
		if err != nil {
			parseErrors.Add(1)
			m.metrics.FireParseErrors.Inc()
			slog.Debug("skipping malformed fire row", "error", err)
			return nil
		}
		place := m.resolver.Resolve(ctx, row.Lat, row.Lng)
		out <- normalize.FireEvent(row, place, m.clock.Now())
		return nil
	})
	pool.Start(ctx)

	go func() {
		for _, line := range lines {
			if !pool.Submit(ctx, line) {
				break
			}
		}
		pool.Stop()
		close(out)
	}()

	stats := CycleStats{}
	for f := range out {
		if _, err := m.engine.StoreFire(ctx, f); err != nil {
			m.metrics.StoreErrors.Inc()
			slog.Error("error storing fire", "location", f.Location, "error", err)
			stats.Errors++
			continue
		}
		stats.Processed++
		m.metrics.FireRowsProcessed.Inc()
	}
	stats.Errors += int(parseErrors.Load())

	slog.Info("fire ingestion cycle complete", "processed", stats.Processed, "errors", stats.Errors)
	return stats, nil
}

// RunDisasterCycle polls GDACS and USGS. Each source is fetched and stored
// independently; the cycle only fails when every source fails.
func (m *Manager) RunDisasterCycle(ctx context.Context) error {
	now := m.clock.Now()
	failures := 0

	items, err := m.gdacs.Fetch(ctx)
	if err != nil {
		failures++
		m.metrics.FetchFailures.WithLabelValues("gdacs").Inc()
		slog.Error("poll failed", "source", "gdacs", "error", err)
	} else {
		for _, item := range items {
			m.storeDisaster(ctx, normalize.FromGDACS(item, now))
		}
	}

	feed, err := m.usgs.Fetch(ctx)
	if err != nil {
		failures++
		m.metrics.FetchFailures.WithLabelValues("usgs").Inc()
		slog.Error("poll failed", "source", "usgs", "error", err)
	} else {
		for _, feature := range feed.Features {
			d, err := normalize.FromUSGS(feature, now)
			if err != nil {
				slog.Warn("skipping malformed quake feature", "error", err)
				continue
			}
			m.storeDisaster(ctx, d)
		}
	}

	if failures == 2 {
		return fmt.Errorf("all disaster sources failed")
	}

	slog.Debug("disaster ingestion cycle complete")
	return nil
}

func (m *Manager) storeDisaster(ctx context.Context, d *models.DisasterEvent) {
	if _, err := m.engine.UpsertDisaster(ctx, d); err != nil {
		m.metrics.StoreErrors.Inc()
		slog.Error("error storing disaster", "title", d.Title, "source", d.Source, "error", err)
	}
}
