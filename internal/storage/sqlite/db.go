// Package sqlite stores save slots and the leaderboard in a SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DB is an open lifesim database.
type DB struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens or creates the database at path and ensures its schema.
func Open(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", cleanPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := createSchemas(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schemas: %w", err)
	}
	return &DB{sqlDB: sqlDB, now: time.Now}, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			name TEXT NOT NULL,
			age INTEGER NOT NULL,
			saved_at INTEGER NOT NULL,
			player TEXT NOT NULL,
			flags TEXT NOT NULL,
			history TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS leaderboard (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			age INTEGER NOT NULL,
			net_worth REAL NOT NULL,
			major TEXT NOT NULL DEFAULT '',
			ended_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_leaderboard_net_worth ON leaderboard(net_worth DESC);`,
	}
	for _, query := range schemas {
		if _, err := db.ExecContext(context.Background(), query); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the SQLite handle.
func (db *DB) Close() error {
	if db == nil || db.sqlDB == nil {
		return nil
	}
	return db.sqlDB.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
