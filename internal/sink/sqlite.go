package sink

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-fireform/pkg/observation"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS observations (
	id TEXT PRIMARY KEY,
	submitted_at TEXT NOT NULL,
	location_name TEXT NOT NULL,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	temperature REAL NOT NULL,
	humidity REAL NOT NULL,
	wind_speed REAL NOT NULL,
	cloud_cover REAL NOT NULL,
	precipitation REAL NOT NULL,
	wind_direction REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_observations_submitted_at ON observations(submitted_at);`

// timestampLayout is fixed width so submitted_at sorts chronologically as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteSink keeps a submission history, one row per envelope.
type SQLiteSink struct {
	db   *sql.DB
	Path string
}

// NewSQLiteSink opens (creating if needed) the database at path.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	if path == "" {
		return nil, errors.New("sqlite: path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: create tables: %w", err)
	}
	return &SQLiteSink{db: db, Path: path}, nil
}

func (s *SQLiteSink) Name() string { return "sqlite" }

func (s *SQLiteSink) Publish(ctx context.Context, env Envelope) error {
	obs := env.Observation
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO observations (
			id, submitted_at, location_name, latitude, longitude, temperature,
			humidity, wind_speed, cloud_cover, precipitation, wind_direction
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		env.ID,
		env.SubmittedAt.UTC().Format(timestampLayout),
		obs.LocationName,
		obs.Latitude,
		obs.Longitude,
		obs.Temperature,
		obs.Humidity,
		obs.WindSpeed,
		obs.CloudCover,
		obs.Precipitation,
		obs.WindDirection,
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert %s: %w", env.ID, err)
	}
	return nil
}

// Recent returns up to n envelopes, newest first.
func (s *SQLiteSink) Recent(ctx context.Context, n int) ([]Envelope, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, submitted_at, location_name, latitude, longitude, temperature,
			humidity, wind_speed, cloud_cover, precipitation, wind_direction
		FROM observations
		ORDER BY submitted_at DESC, rowid DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query recent: %w", err)
	}
	defer rows.Close()

	var out []Envelope
	for rows.Next() {
		var (
			env       Envelope
			obs       observation.Observation
			submitted string
		)
		if err := rows.Scan(
			&env.ID,
			&submitted,
			&obs.LocationName,
			&obs.Latitude,
			&obs.Longitude,
			&obs.Temperature,
			&obs.Humidity,
			&obs.WindSpeed,
			&obs.CloudCover,
			&obs.Precipitation,
			&obs.WindDirection,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan row: %w", err)
		}
		env.SubmittedAt, err = time.Parse(time.RFC3339Nano, submitted)
		if err != nil {
			return nil, fmt.Errorf("sqlite: parse submitted_at %q: %w", submitted, err)
		}
		env.Observation = obs
		out = append(out, env)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate rows: %w", err)
	}
	return out, nil
}

// Ping checks the database connection.
func (s *SQLiteSink) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteSink) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
