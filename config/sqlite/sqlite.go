package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"habit-streak-bot/config"
)

const driverName = "sqlite"

// Connect opens the database file, applies connection pragmas and runs migrations.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen < 1 {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// dsn puts the pragmas in the connection string so every pooled connection gets them.
func dsn(cfg config.DatabaseConfig) string {
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()))
	return "file:" + cfg.Path + "?" + q.Encode()
}

// IsUniqueViolation reports whether err came from a UNIQUE or PRIMARY KEY constraint.
func IsUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// Disconnect closes the database.
func Disconnect(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// Migrate creates missing tables and indexes. It is safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return tx.Commit()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		username TEXT NOT NULL DEFAULT '',
		timezone TEXT NOT NULL DEFAULT 'UTC',
		daily_api_calls INTEGER NOT NULL DEFAULT 0,
		last_api_reset DATETIME,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_active DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		reminder_time TEXT NOT NULL,
		timezone TEXT NOT NULL DEFAULT 'UTC',
		is_active INTEGER NOT NULL DEFAULT 1,
		is_recurring INTEGER NOT NULL DEFAULT 1,
		recurrence_pattern TEXT NOT NULL DEFAULT 'daily',
		recurrence_interval INTEGER NOT NULL DEFAULT 1,
		days_of_week TEXT NOT NULL DEFAULT '',
		anchor_date TEXT NOT NULL DEFAULT '',
		generation_method TEXT NOT NULL DEFAULT 'manual',
		parent_request_id TEXT NOT NULL DEFAULT '',
		calendar_event_id TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_active ON tasks(is_active)`,
	`CREATE TABLE IF NOT EXISTS streaks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		current_streak INTEGER NOT NULL DEFAULT 0 CHECK (current_streak >= 0),
		longest_streak INTEGER NOT NULL DEFAULT 0 CHECK (longest_streak >= current_streak),
		last_completion_date TEXT,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, task_id)
	)`,
	`CREATE TABLE IF NOT EXISTS completions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		completion_date TEXT NOT NULL,
		image_reference TEXT NOT NULL DEFAULT '',
		explanation TEXT NOT NULL DEFAULT '',
		verified INTEGER NOT NULL DEFAULT 0,
		confidence INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, task_id, completion_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_completions_user_date ON completions(user_id, completion_date DESC)`,
	`CREATE TABLE IF NOT EXISTS api_usage (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		endpoint TEXT NOT NULL,
		tokens_used INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS dm_conversations (
		user_id INTEGER PRIMARY KEY,
		state TEXT NOT NULL,
		context TEXT NOT NULL DEFAULT '{}',
		pending_tasks TEXT NOT NULL DEFAULT '[]',
		last_interaction DATETIME NOT NULL,
		expires_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dm_conversations_expires ON dm_conversations(expires_at)`,
}
