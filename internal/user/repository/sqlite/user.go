package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/user/repository"
)

const userColumns = `id, username, timezone, daily_api_calls, last_api_reset, created_at, last_active`

func (r *implRepository) GetUser(ctx context.Context, id int64) (model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "user/repository/sqlite.GetUser: %v", err)
		return model.User{}, repository.ErrFailedToGet
	}
	return u, nil
}

func (r *implRepository) EnsureUser(ctx context.Context, opt repository.EnsureUserOptions) (model.User, error) {
	tz := opt.Timezone
	if tz == "" {
		tz = model.DefaultTimezone
	}
	at := opt.At.UTC().Truncate(time.Second)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, timezone, created_at, last_active) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET last_active = excluded.last_active`, opt.ID, tz, at, at)
	if err != nil {
		r.l.Errorf(ctx, "user/repository/sqlite.EnsureUser: %v", err)
		return model.User{}, repository.ErrFailedToUpsert
	}
	return r.GetUser(ctx, opt.ID)
}

func (r *implRepository) UpdateUser(ctx context.Context, opt repository.UpdateUserOptions) (model.User, error) {
	var (
		sets []string
		args []interface{}
	)
	if opt.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *opt.Username)
	}
	if opt.Timezone != nil {
		sets = append(sets, "timezone = ?")
		args = append(args, *opt.Timezone)
	}
	if len(sets) == 0 {
		return r.GetUser(ctx, opt.ID)
	}

	args = append(args, opt.ID)
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		r.l.Errorf(ctx, "user/repository/sqlite.UpdateUser: %v", err)
		return model.User{}, repository.ErrFailedToUpdate
	}
	return r.GetUser(ctx, opt.ID)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(sc scanner) (model.User, error) {
	var (
		u     model.User
		reset sql.NullTime
	)
	if err := sc.Scan(&u.ID, &u.Username, &u.Timezone, &u.DailyAPICalls, &reset, &u.CreatedAt, &u.LastActive); err != nil {
		return model.User{}, err
	}
	if reset.Valid {
		u.LastAPIReset = reset.Time
	}
	return u, nil
}
