package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// NewDBConnection opens the pool and pings it before handing it out.
func NewDBConnection(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

const leadsSchema = `
CREATE TABLE IF NOT EXISTS leads (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	email       TEXT NOT NULL DEFAULT '',
	phone       TEXT NOT NULL DEFAULT '',
	company     TEXT NOT NULL DEFAULT '',
	service     TEXT NOT NULL DEFAULT '',
	source      TEXT NOT NULL DEFAULT '',
	campaign    TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'New',
	assigned_to TEXT NOT NULL DEFAULT 'Unassigned',
	notes       TEXT NOT NULL DEFAULT '',
	value       DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (value >= 0),
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL,
	CHECK (created_at <= updated_at)
);
CREATE INDEX IF NOT EXISTS leads_created_at_idx ON leads (created_at DESC);
`

// EnsureSchema creates the leads table when it is missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, leadsSchema); err != nil {
		return fmt.Errorf("create leads schema: %w", err)
	}
	return nil
}
