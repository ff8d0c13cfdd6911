// Package store handles SQLite persistence of the lookup history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sh0bas/osrs-advisor/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for lookup history. Only names and totals are
// recorded; profile data is never cached.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lookups (
			id INTEGER PRIMARY KEY,
			username TEXT NOT NULL,
			display_name TEXT NOT NULL,
			total_experience INTEGER NOT NULL,
			looked_up_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_lookups_looked_up_at ON lookups(looked_up_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordLookup stores one successful lookup.
func (s *Store) RecordLookup(ctx context.Context, rec model.LookupRecord) error {
	if rec.Username == "" {
		return fmt.Errorf("username is empty")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lookups (username, display_name, total_experience, looked_up_at)
		 VALUES (?, ?, ?, ?)`,
		rec.Username,
		rec.DisplayName,
		rec.TotalExperience,
		rec.LookedUpAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record lookup: %w", err)
	}
	return nil
}

// RecentLookups returns the latest lookup per distinct username, newest
// first, capped at limit.
func (s *Store) RecentLookups(ctx context.Context, limit int) ([]model.LookupRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := `SELECT username, display_name, total_experience, MAX(looked_up_at) AS looked_up_at
		FROM lookups
		GROUP BY LOWER(username)
		ORDER BY looked_up_at DESC
		LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.LookupRecord
	for rows.Next() {
		var rec model.LookupRecord
		var lookedUpAt string
		if err := rows.Scan(&rec.Username, &rec.DisplayName, &rec.TotalExperience, &lookedUpAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, lookedUpAt)
		if err != nil {
			return nil, err
		}
		rec.LookedUpAt = parsed
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
