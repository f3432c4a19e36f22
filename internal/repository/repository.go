package repository

import (
	"context"

	"github.com/Sarang-2004/DigitalEarth/internal/models"
)

// FireRepository is the store adapter for the wildfires table. The store
// owns record ids: InsertFire assigns the id on the passed record.
type FireRepository interface {
	InsertFire(ctx context.Context, f *models.FireEvent) error
	// RecentFires returns at most limit records ordered by last_update
	// descending. This bounded read backs the fire dedup window.
	RecentFires(ctx context.Context, limit int) ([]models.FireEvent, error)
	ListFires(ctx context.Context) ([]models.FireEvent, error)
}

// DisasterRepository is the store adapter for the disasters table.
type DisasterRepository interface {
	// FindDisaster returns the record matching (title, source) exactly, or
	// nil when none exists.
	FindDisaster(ctx context.Context, title, source string) (*models.DisasterEvent, error)
	InsertDisaster(ctx context.Context, d *models.DisasterEvent) error
	UpdateDisaster(ctx context.Context, id int64, d *models.DisasterEvent) error
	ListDisasters(ctx context.Context) ([]models.DisasterEvent, error)
}
