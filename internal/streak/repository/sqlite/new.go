package sqlite

import (
	"database/sql"
	"time"

	"habit-streak-bot/internal/streak/repository"
	pkgLog "habit-streak-bot/pkg/log"
)

type implRepository struct {
	db  *sql.DB
	l   pkgLog.Logger
	now func() time.Time
}

// New creates the SQLite-backed streak repository.
func New(db *sql.DB, l pkgLog.Logger) repository.Repository {
	return &implRepository{db: db, l: l, now: time.Now}
}
