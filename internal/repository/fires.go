package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sarang-2004/DigitalEarth/internal/models"
)

const fireColumns = `id, location, city, state, country, latitude, longitude,
	intensity, threat, size, temperature, wind_speed, status, cause, last_update`

func (s *SQLiteDB) InsertFire(ctx context.Context, f *models.FireEvent) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO wildfires (location, city, state, country, latitude, longitude,
			intensity, threat, size, temperature, wind_speed, status, cause, last_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Location, f.City, f.State, f.Country, f.Latitude, f.Longitude,
		string(f.Intensity), string(f.Threat), f.Size, f.Temperature, f.WindSpeed,
		f.Status, f.Cause, f.LastUpdate,
	)
	if err != nil {
		return fmt.Errorf("error inserting fire: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("error reading inserted fire id: %w", err)
	}
	f.ID = id
	return nil
}

func (s *SQLiteDB) RecentFires(ctx context.Context, limit int) ([]models.FireEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+fireColumns+` FROM wildfires
		ORDER BY last_update DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying recent fires: %w", err)
	}
	defer rows.Close()

	return scanFires(rows)
}

func (s *SQLiteDB) ListFires(ctx context.Context) ([]models.FireEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+fireColumns+` FROM wildfires
		ORDER BY last_update DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying fires: %w", err)
	}
	defer rows.Close()

	return scanFires(rows)
}

func scanFires(rows *sql.Rows) ([]models.FireEvent, error) {
	var fires []models.FireEvent
	for rows.Next() {
		var f models.FireEvent
		var intensity, threat string
		if err := rows.Scan(&f.ID, &f.Location, &f.City, &f.State, &f.Country,
			&f.Latitude, &f.Longitude, &intensity, &threat, &f.Size,
			&f.Temperature, &f.WindSpeed, &f.Status, &f.Cause, &f.LastUpdate); err != nil {
			return nil, fmt.Errorf("error scanning fire row: %w", err)
		}
		f.Intensity = models.Severity(intensity)
		f.Threat = models.Severity(threat)
		f.Coordinates = models.Coordinates{Lat: f.Latitude, Lng: f.Longitude}
		fires = append(fires, f)
	}
	return fires, rows.Err()
}
