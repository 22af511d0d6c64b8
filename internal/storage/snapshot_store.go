// Package storage persists the catalog, recommendation table and submission
// ledger as independent JSON blobs in SQLite.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"
)

const createSnapshotsTable = `CREATE TABLE IF NOT EXISTS snapshots (
	name       TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

const upsertSnapshot = `INSERT INTO snapshots (name, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`

const selectSnapshot = `SELECT payload FROM snapshots WHERE name = ?`

// SnapshotStore reads and writes named JSON blobs. Blobs carry no version.
type SnapshotStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the SQLite database at path and creates the snapshots table
func Open(ctx context.Context, path string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to enable WAL mode")
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to set busy timeout")
	}

	store := New(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an open database handle
func New(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db, now: time.Now}
}

// Migrate creates the snapshots table if missing
func (s *SnapshotStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSnapshotsTable); err != nil {
		return errors.Wrap(err, "failed to create snapshots table")
	}
	return nil
}

// Save stores v as JSON under key, replacing any previous blob
func (s *SnapshotStore) Save(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "failed to encode snapshot %s", key)
	}
	if _, err := s.db.ExecContext(ctx, upsertSnapshot, key, string(payload), s.now().UTC()); err != nil {
		return errors.Wrapf(err, "failed to save snapshot %s", key)
	}
	return nil
}

// Load decodes the blob stored under key into v. It reports false when no
// blob exists.
func (s *SnapshotStore) Load(ctx context.Context, key string, v any) (bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, selectSnapshot, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "failed to load snapshot %s", key)
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return false, errors.Wrapf(err, "failed to decode snapshot %s", key)
	}
	return true, nil
}

// Ping checks that the database is reachable
func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
