package ingest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/Sarang-2004/DigitalEarth/internal/models"
	"github.com/Sarang-2004/DigitalEarth/internal/observability"
)

// mockFireRepo implements repository.FireRepository for testing.
type mockFireRepo struct {
	mu    sync.Mutex
	fires []models.FireEvent
}

func (m *mockFireRepo) InsertFire(ctx context.Context, f *models.FireEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.ID = int64(len(m.fires) + 1)
	// Prepend so the slice stays ordered newest first.
	m.fires = append([]models.FireEvent{*f}, m.fires...)
	return nil
}

func (m *mockFireRepo) RecentFires(ctx context.Context, limit int) ([]models.FireEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.fires) < limit {
		limit = len(m.fires)
	}
	out := make([]models.FireEvent, limit)
	copy(out, m.fires[:limit])
	return out, nil
}

func (m *mockFireRepo) ListFires(ctx context.Context) ([]models.FireEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.FireEvent(nil), m.fires...), nil
}

// mockDisasterRepo implements repository.DisasterRepository for testing.
type mockDisasterRepo struct {
	mu        sync.Mutex
	disasters map[int64]*models.DisasterEvent
	nextID    int64
	updates   int
}

func newMockDisasterRepo() *mockDisasterRepo {
	return &mockDisasterRepo{disasters: make(map[int64]*models.DisasterEvent)}
}

func (m *mockDisasterRepo) FindDisaster(ctx context.Context, title, source string) (*models.DisasterEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.disasters {
		if d.Title == title && d.Source == source {
			copied := *d
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockDisasterRepo) InsertDisaster(ctx context.Context, d *models.DisasterEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	d.ID = m.nextID
	copied := *d
	m.disasters[d.ID] = &copied
	return nil
}

func (m *mockDisasterRepo) UpdateDisaster(ctx context.Context, id int64, d *models.DisasterEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.disasters[id]; !ok {
		return fmt.Errorf("no disaster with id %d", id)
	}
	copied := *d
	copied.ID = id
	m.disasters[id] = &copied
	m.updates++
	return nil
}

func (m *mockDisasterRepo) ListDisasters(ctx context.Context) ([]models.DisasterEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DisasterEvent
	for _, d := range m.disasters {
		out = append(out, *d)
	}
	return out, nil
}

func newTestEngine(fires *mockFireRepo, disasters *mockDisasterRepo, window int) *Engine {
	return NewEngine(fires, disasters, window, observability.NewMetricsForTesting(), clockwork.NewFakeClock())
}

func fireAt(location string) *models.FireEvent {
	return &models.FireEvent{Location: location, Status: "Active"}
}

func TestStoreFire_SkipsRecentDuplicate(t *testing.T) {
	ctx := context.Background()
	fires := &mockFireRepo{}
	engine := newTestEngine(fires, newMockDisasterRepo(), 25)

	if _, err := engine.StoreFire(ctx, fireAt("Paris, France")); err != nil {
		t.Fatalf("StoreFire failed: %v", err)
	}

	// Same location in different case and whitespace is a duplicate.
	inserted, err := engine.StoreFire(ctx, fireAt("  paris, france "))
	if err != nil {
		t.Fatalf("StoreFire failed: %v", err)
	}
	if inserted {
		t.Error("expected duplicate to be skipped")
	}

	inserted, err = engine.StoreFire(ctx, fireAt("Lyon, France"))
	if err != nil {
		t.Fatalf("StoreFire failed: %v", err)
	}
	if !inserted {
		t.Error("expected new location to be inserted")
	}

	stored, _ := fires.ListFires(ctx)
	if len(stored) != 2 {
		t.Errorf("expected 2 stored fires, got %d", len(stored))
	}
}

func TestStoreFire_WindowIsBounded(t *testing.T) {
	ctx := context.Background()
	fires := &mockFireRepo{}
	engine := newTestEngine(fires, newMockDisasterRepo(), 3)

	locations := []string{"A", "B", "C", "D"}
	for _, loc := range locations {
		if _, err := engine.StoreFire(ctx, fireAt(loc)); err != nil {
			t.Fatalf("StoreFire(%s) failed: %v", loc, err)
		}
	}

	// "A" has fallen out of the 3-record window, so it is treated as new.
	inserted, err := engine.StoreFire(ctx, fireAt("A"))
	if err != nil {
		t.Fatalf("StoreFire failed: %v", err)
	}
	if !inserted {
		t.Error("expected location outside the window to be re-inserted")
	}

	// "D" is still inside the window.
	inserted, err = engine.StoreFire(ctx, fireAt("D"))
	if err != nil {
		t.Fatalf("StoreFire failed: %v", err)
	}
	if inserted {
		t.Error("expected location inside the window to be skipped")
	}
}

func TestStoreFire_EmptyLocation(t *testing.T) {
	engine := newTestEngine(&mockFireRepo{}, newMockDisasterRepo(), 25)

	if _, err := engine.StoreFire(context.Background(), fireAt("   ")); err == nil {
		t.Error("expected error for empty location, got nil")
	}
}

func TestUpsertDisaster_Idempotent(t *testing.T) {
	ctx := context.Background()
	disasters := newMockDisasterRepo()
	engine := newTestEngine(&mockFireRepo{}, disasters, 25)

	d1 := &models.DisasterEvent{Title: "Earthquake M6.1", Source: "USGS", Severity: models.SeverityHigh}
	updated, err := engine.UpsertDisaster(ctx, d1)
	if err != nil {
		t.Fatalf("UpsertDisaster failed: %v", err)
	}
	if updated {
		t.Error("first upsert should insert, not update")
	}

	d2 := &models.DisasterEvent{Title: "Earthquake M6.1", Source: "USGS", Severity: models.SeverityHigh, Description: "revised"}
	updated, err = engine.UpsertDisaster(ctx, d2)
	if err != nil {
		t.Fatalf("UpsertDisaster failed: %v", err)
	}
	if !updated {
		t.Error("second upsert should update in place")
	}
	if d2.ID != d1.ID {
		t.Errorf("update must preserve the stored id: got %d, want %d", d2.ID, d1.ID)
	}

	stored, _ := disasters.ListDisasters(ctx)
	if len(stored) != 1 {
		t.Errorf("expected exactly 1 stored disaster, got %d", len(stored))
	}
	if disasters.updates != 1 {
		t.Errorf("expected 1 update, got %d", disasters.updates)
	}
}

func TestUpsertDisaster_DifferentSourceInsertsNew(t *testing.T) {
	ctx := context.Background()
	disasters := newMockDisasterRepo()
	engine := newTestEngine(&mockFireRepo{}, disasters, 25)

	engine.UpsertDisaster(ctx, &models.DisasterEvent{Title: "Earthquake M6.1", Source: "USGS"})
	engine.UpsertDisaster(ctx, &models.DisasterEvent{Title: "Earthquake M6.1", Source: "GDACS"})

	stored, _ := disasters.ListDisasters(ctx)
	if len(stored) != 2 {
		t.Errorf("expected 2 stored disasters for distinct sources, got %d", len(stored))
	}
}

func TestUpsertDisaster_MissingIdentity(t *testing.T) {
	engine := newTestEngine(&mockFireRepo{}, newMockDisasterRepo(), 25)

	if _, err := engine.UpsertDisaster(context.Background(), &models.DisasterEvent{Source: "USGS"}); err == nil {
		t.Error("expected error for empty title, got nil")
	}
}
