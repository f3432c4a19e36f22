package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Sarang-2004/DigitalEarth/internal/models"
)

const disasterColumns = `id, title, description, type, severity, location, source,
	status, url, magnitude, latitude, longitude, created_at, last_update`

func (s *SQLiteDB) FindDisaster(ctx context.Context, title, source string) (*models.DisasterEvent, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+disasterColumns+` FROM disasters
		WHERE title = ? AND source = ?`, title, source)

	d, err := scanDisaster(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding disaster: %w", err)
	}
	return d, nil
}

func (s *SQLiteDB) InsertDisaster(ctx context.Context, d *models.DisasterEvent) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO disasters (title, description, type, severity, location, source,
			status, url, magnitude, latitude, longitude, created_at, last_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Title, d.Description, string(d.Type), string(d.Severity), d.Location,
		d.Source, d.Status, d.URL, nullable(d.Magnitude), nullable(d.Latitude),
		nullable(d.Longitude), d.CreatedAt, d.LastUpdate,
	)
	if err != nil {
		return fmt.Errorf("error inserting disaster: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("error reading inserted disaster id: %w", err)
	}
	d.ID = id
	return nil
}

func (s *SQLiteDB) UpdateDisaster(ctx context.Context, id int64, d *models.DisasterEvent) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE disasters SET title = ?, description = ?, type = ?, severity = ?,
			location = ?, source = ?, status = ?, url = ?, magnitude = ?,
			latitude = ?, longitude = ?, created_at = ?, last_update = ?
		WHERE id = ?`,
		d.Title, d.Description, string(d.Type), string(d.Severity), d.Location,
		d.Source, d.Status, d.URL, nullable(d.Magnitude), nullable(d.Latitude),
		nullable(d.Longitude), d.CreatedAt, d.LastUpdate, id,
	)
	if err != nil {
		return fmt.Errorf("error updating disaster %d: %w", id, err)
	}
	return nil
}

func (s *SQLiteDB) ListDisasters(ctx context.Context) ([]models.DisasterEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+disasterColumns+` FROM disasters
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying disasters: %w", err)
	}
	defer rows.Close()

	var disasters []models.DisasterEvent
	for rows.Next() {
		d, err := scanDisaster(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning disaster row: %w", err)
		}
		disasters = append(disasters, *d)
	}
	return disasters, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDisaster(row rowScanner) (*models.DisasterEvent, error) {
	var d models.DisasterEvent
	var typ, severity string
	var magnitude, latitude, longitude sql.NullFloat64

	err := row.Scan(&d.ID, &d.Title, &d.Description, &typ, &severity, &d.Location,
		&d.Source, &d.Status, &d.URL, &magnitude, &latitude, &longitude,
		&d.CreatedAt, &d.LastUpdate)
	if err != nil {
		return nil, err
	}

	d.Type = models.DisasterType(typ)
	d.Severity = models.Severity(severity)
	if magnitude.Valid {
		d.Magnitude = &magnitude.Float64
	}
	if latitude.Valid {
		d.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		d.Longitude = &longitude.Float64
	}
	return &d, nil
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
