package sqlite

import (
	"database/sql"

	"habit-streak-bot/internal/conversation/repository"
	pkgLog "habit-streak-bot/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  pkgLog.Logger
}

// New creates the SQLite-backed conversation repository.
func New(db *sql.DB, l pkgLog.Logger) repository.Repository {
	return &implRepository{db: db, l: l}
}
