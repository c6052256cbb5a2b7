package sqlite

import (
	"database/sql"

	"habit-streak-bot/internal/quota/repository"
	pkgLog "habit-streak-bot/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  pkgLog.Logger
}

// New creates the SQLite-backed usage repository.
func New(db *sql.DB, l pkgLog.Logger) repository.Repository {
	return &implRepository{db: db, l: l}
}
