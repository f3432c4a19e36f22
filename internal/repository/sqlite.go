package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS wildfires (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			location TEXT NOT NULL,
			city TEXT,
			state TEXT,
			country TEXT,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			intensity TEXT NOT NULL,
			threat TEXT NOT NULL,
			size TEXT,
			temperature TEXT,
			wind_speed TEXT,
			status TEXT NOT NULL,
			cause TEXT,
			last_update DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS disasters (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL,
			severity TEXT NOT NULL,
			location TEXT,
			source TEXT NOT NULL,
			status TEXT,
			url TEXT,
			magnitude REAL,
			latitude REAL,
			longitude REAL,
			created_at DATETIME NOT NULL,
			last_update DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_wildfires_last_update ON wildfires(last_update);
		CREATE INDEX IF NOT EXISTS idx_disasters_title_source ON disasters(title, source);
		CREATE INDEX IF NOT EXISTS idx_disasters_created_at ON disasters(created_at);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
