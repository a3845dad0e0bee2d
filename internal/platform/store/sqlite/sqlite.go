// Package sqlite opens the embedded database used when no postgres is configured
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Config configures the embedded database
type Config struct {
	// Path is a file path or ":memory:"
	Path        string
	BusyTimeout time.Duration
}

// DB is an open sqlite handle limited to one connection.
// The single connection serializes writers so transactions never see SQLITE_BUSY from ourselves
type DB struct {
	*sql.DB
	Path string
}

var openDB = sql.Open

// DSN renders the modernc connection string with pragmas applied on every connection
func DSN(cfg Config) string {
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		cfg.Path, busy.Milliseconds())
}

// Open opens and pings the database
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite: empty path")
	}
	db, err := openDB("sqlite", DSN(cfg))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping %s: %w", cfg.Path, err)
	}
	return &DB{DB: db, Path: cfg.Path}, nil
}
