package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rms-demo/rms-backend/internal/geo"
	"github.com/rms-demo/rms-backend/internal/records/domain"
)

// QueryLimit caps every list query at the most recent 500 records.
const QueryLimit = 500

// Repo provides persistence for records on Postgres/PostGIS.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// EnsureSchema creates the postgis extension, the records table and the
// created_at index if they do not exist yet. Safe to run on every startup.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis;`,
		`CREATE TABLE IF NOT EXISTS records (
			id uuid PRIMARY KEY,
			title varchar(200) NOT NULL,
			description varchar(2000),
			location geometry(Point, 4326),
			created_at timestamptz NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_records_created_at ON records (created_at);`,
	}
	for _, q := range stmts {
		if _, err := r.db.Exec(ctx, q); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Insert persists a new record, assigning its ID and creation timestamp
// when unset. The stored record is immutable afterwards.
func (r *Repo) Insert(ctx context.Context, rec *domain.Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	const q = `
INSERT INTO records (id, title, description, location, created_at)
VALUES ($1, $2, $3, CASE WHEN $4::float8 IS NULL OR $5::float8 IS NULL THEN NULL
                         ELSE ST_SetSRID(ST_MakePoint($4, $5), 4326) END, $6);
`
	var lon, lat *float64
	if rec.Location != nil {
		lon = &rec.Location.Lon
		lat = &rec.Location.Lat
	}

	if _, err := r.db.Exec(ctx, q, rec.ID, rec.Title, rec.Description, lon, lat, rec.CreatedAt); err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// GetByID returns a single record or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	const q = `
SELECT id, title, description, ST_X(location), ST_Y(location), created_at
FROM records
WHERE id = $1;
`
	rec, err := scanRecord(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// Query returns records newest first, capped at QueryLimit. With bounds
// given, only records whose location the box contains are returned; the
// containment test is ST_Contains, so records without a location and
// points exactly on the box edge never match. Without bounds all records
// are returned regardless of location presence.
func (r *Repo) Query(ctx context.Context, bounds *geo.Bounds) ([]domain.Record, error) {
	const base = `
SELECT id, title, description, ST_X(location), ST_Y(location), created_at
FROM records
`
	const tail = `
ORDER BY created_at DESC
LIMIT $%d;
`

	var (
		rows pgx.Rows
		err  error
	)
	if bounds != nil {
		q := base + `WHERE location IS NOT NULL
  AND ST_Contains(ST_GeomFromText($1, 4326), location)` + fmt.Sprintf(tail, 2)
		rows, err = r.db.Query(ctx, q, bounds.PolygonWKT(), QueryLimit)
	} else {
		rows, err = r.db.Query(ctx, base+fmt.Sprintf(tail, 1), QueryLimit)
	}
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Record, 0, 16)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	return out, nil
}

func scanRecord(row pgx.Row) (*domain.Record, error) {
	var (
		rec      domain.Record
		lon, lat *float64
	)
	if err := row.Scan(&rec.ID, &rec.Title, &rec.Description, &lon, &lat, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if lon != nil && lat != nil {
		rec.Location = &geo.Point{Lon: *lon, Lat: *lat}
	}
	return &rec, nil
}
