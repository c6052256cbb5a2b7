package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"habit-streak-bot/internal/quota/repository"
)

func (r *implRepository) GetUsage(ctx context.Context, userID int64) (repository.Usage, error) {
	u, err := getUsage(ctx, r.db, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.Usage{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "quota/repository/sqlite.GetUsage: %v", err)
		return repository.Usage{}, repository.ErrFailedToGet
	}
	return u, nil
}

func (r *implRepository) IncrementUsage(ctx context.Context, userID int64, dayStart, at time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "quota/repository/sqlite.IncrementUsage: begin: %v", err)
		return 0, repository.ErrFailedToUpdate
	}
	defer tx.Rollback()

	at = at.UTC().Truncate(time.Second)
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (id, created_at, last_active) VALUES (?, ?, ?)`, userID, at, at); err != nil {
		r.l.Errorf(ctx, "quota/repository/sqlite.IncrementUsage: owner: %v", err)
		return 0, repository.ErrFailedToUpdate
	}

	u, err := getUsage(ctx, tx, userID)
	if err != nil {
		r.l.Errorf(ctx, "quota/repository/sqlite.IncrementUsage: read: %v", err)
		return 0, repository.ErrFailedToUpdate
	}

	calls, reset := u.Calls+1, u.LastReset
	if reset.IsZero() || reset.Before(dayStart) {
		calls, reset = 1, at
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET daily_api_calls = ?, last_api_reset = ? WHERE id = ?`, calls, reset, userID); err != nil {
		r.l.Errorf(ctx, "quota/repository/sqlite.IncrementUsage: write: %v", err)
		return 0, repository.ErrFailedToUpdate
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "quota/repository/sqlite.IncrementUsage: commit: %v", err)
		return 0, repository.ErrFailedToUpdate
	}
	return calls, nil
}

func (r *implRepository) CreateUsageLog(ctx context.Context, opt repository.CreateUsageLogOptions) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_usage (user_id, endpoint, tokens_used, created_at) VALUES (?, ?, ?, ?)`,
		opt.UserID, opt.Endpoint, opt.Tokens, opt.At.UTC().Truncate(time.Second))
	if err != nil {
		r.l.Errorf(ctx, "quota/repository/sqlite.CreateUsageLog: %v", err)
		return repository.ErrFailedToInsert
	}
	return nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func getUsage(ctx context.Context, q querier, userID int64) (repository.Usage, error) {
	var (
		u     repository.Usage
		reset sql.NullTime
	)
	err := q.QueryRowContext(ctx, `SELECT daily_api_calls, last_api_reset FROM users WHERE id = ?`, userID).
		Scan(&u.Calls, &reset)
	if err != nil {
		return repository.Usage{}, err
	}
	if reset.Valid {
		u.LastReset = reset.Time
	}
	return u, nil
}
