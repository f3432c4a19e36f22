package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/Sarang-2004/DigitalEarth/internal/models"
	"github.com/Sarang-2004/DigitalEarth/internal/observability"
	"github.com/Sarang-2004/DigitalEarth/internal/repository"
)

// NormalizeLocation produces the dedup identity of a fire record.
func NormalizeLocation(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Engine decides whether incoming records are inserted, updated, or skipped.
// Fires use a bounded recency-window dedup; disasters use an exact-key
// upsert on (title, source).
type Engine struct {
	fires     repository.FireRepository
	disasters repository.DisasterRepository
	window    int
	metrics   *observability.Metrics
	clock     clockwork.Clock
}

func NewEngine(fires repository.FireRepository, disasters repository.DisasterRepository, window int, metrics *observability.Metrics, clock clockwork.Clock) *Engine {
	return &Engine{
		fires:     fires,
		disasters: disasters,
		window:    window,
		metrics:   metrics,
		clock:     clock,
	}
}

// StoreFire inserts the record unless its normalized location matches one of
// the window most recently updated fires. The window is an approximation:
// a location that has fallen out of the last N records is treated as new
// again. That bounds the dedup query cost and must stay that way.
func (e *Engine) StoreFire(ctx context.Context, f *models.FireEvent) (bool, error) {
	loc := NormalizeLocation(f.Location)
	if loc == "" {
		return false, fmt.Errorf("fire record has empty location")
	}

	recent, err := e.fires.RecentFires(ctx, e.window)
	if err != nil {
		return false, fmt.Errorf("error querying recent fires: %w", err)
	}
	for _, r := range recent {
		if NormalizeLocation(r.Location) == loc {
			e.metrics.FireDuplicates.Inc()
			return false, nil
		}
	}

	f.LastUpdate = e.clock.Now().UTC()
	if err := e.fires.InsertFire(ctx, f); err != nil {
		return false, fmt.Errorf("error storing fire for %q: %w", f.Location, err)
	}
	e.metrics.FireInserts.Inc()
	return true, nil
}

// UpsertDisaster updates the stored record matching (title, source) in
// place, preserving its id, or inserts a new one. Returns true when an
// existing record was updated.
func (e *Engine) UpsertDisaster(ctx context.Context, d *models.DisasterEvent) (bool, error) {
	if d.Title == "" || d.Source == "" {
		return false, fmt.Errorf("disaster record missing identity: title=%q source=%q", d.Title, d.Source)
	}

	existing, err := e.disasters.FindDisaster(ctx, d.Title, d.Source)
	if err != nil {
		return false, fmt.Errorf("error looking up disaster %q/%q: %w", d.Title, d.Source, err)
	}

	d.LastUpdate = e.clock.Now().UTC()
	if existing != nil {
		d.ID = existing.ID
		if err := e.disasters.UpdateDisaster(ctx, existing.ID, d); err != nil {
			return false, fmt.Errorf("error updating disaster %d: %w", existing.ID, err)
		}
		e.metrics.DisasterUpdates.Inc()
		return true, nil
	}

	if err := e.disasters.InsertDisaster(ctx, d); err != nil {
		return false, fmt.Errorf("error inserting disaster %q/%q: %w", d.Title, d.Source, err)
	}
	e.metrics.DisasterInserts.Inc()
	return false, nil
}
