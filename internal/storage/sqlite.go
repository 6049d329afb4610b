package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// SQLiteStore keeps any number of named save slots in one database.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens the database at path and creates the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Slot returns a handle to the named slot.
func (s *SQLiteStore) Slot(name string) *SQLiteSlot {
	if strings.TrimSpace(name) == "" {
		name = "default"
	}
	return &SQLiteSlot{store: s, name: name}
}

// SQLiteSlot is one named row of a SQLiteStore.
type SQLiteSlot struct {
	store *SQLiteStore
	name  string
}

// Name returns the slot name.
func (s *SQLiteSlot) Name() string {
	return "slot " + s.name
}

// Write upserts the slot.
func (s *SQLiteSlot) Write(ctx context.Context, data []byte) error {
	if s.store == nil || s.store.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(data) == 0 {
		return fmt.Errorf("save data is required")
	}
	_, err := s.store.sqlDB.ExecContext(
		ctx,
		`INSERT INTO saves (name, data, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		    data = excluded.data,
		    saved_at = excluded.saved_at`,
		s.name,
		data,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put save: %w", err)
	}
	return nil
}

// Read loads the slot, or returns ErrNotFound if it was never written.
func (s *SQLiteSlot) Read(ctx context.Context) ([]byte, error) {
	if s.store == nil || s.store.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	var data []byte
	err := s.store.sqlDB.QueryRowContext(ctx, `SELECT data FROM saves WHERE name = ?`, s.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get save: %w", err)
	}
	return data, nil
}
