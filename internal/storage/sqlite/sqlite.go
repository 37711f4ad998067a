// Package sqlite provides a SQLite-backed implementation of the
// storage.Cache interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/erikaderstedt/tkassa/internal/storage"
)

// Ensure Store implements storage.Cache
var _ storage.Cache = (*Store)(nil)

// Store implements storage.Cache using SQLite. Fingerprints are stored
// as int64 since SQLite integers are signed; the conversion is a pure
// bit reinterpretation and loses nothing.
type Store struct {
	db *sql.DB
}

// New creates a Store at the given database path. It creates the
// parent directories and the schema automatically.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS responses (
		fingerprint INTEGER PRIMARY KEY,
		body TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create responses table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached response body for a fingerprint.
func (s *Store) Get(ctx context.Context, fingerprint uint64) (string, bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		"SELECT body FROM responses WHERE fingerprint = ?",
		int64(fingerprint),
	).Scan(&body)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cached response: %w", err)
	}
	return body, true, nil
}

// Put stores a response body, replacing any previous body for the same
// fingerprint.
func (s *Store) Put(ctx context.Context, fingerprint uint64, body string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO responses (fingerprint, body, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(fingerprint) DO UPDATE SET body = excluded.body, created_at = excluded.created_at`,
		int64(fingerprint), body, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store response: %w", err)
	}
	return nil
}
