package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/task/repository"
	"habit-streak-bot/pkg/datemath"
)

const taskColumns = `id, user_id, name, description, reminder_time, timezone, is_active, is_recurring,
	recurrence_pattern, recurrence_interval, days_of_week, anchor_date, generation_method,
	parent_request_id, calendar_event_id, created_at`

func (r *implRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "task/repository/sqlite.CreateTask: begin: %v", err)
		return model.Task{}, repository.ErrFailedToInsert
	}
	defer tx.Rollback()

	now := r.now().UTC().Truncate(time.Second)

	// the owner row may not exist yet for a direct /create_task
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (id, timezone) VALUES (?, ?)`, opt.UserID, tzOrDefault(opt.Timezone)); err != nil {
		r.l.Errorf(ctx, "task/repository/sqlite.CreateTask: owner: %v", err)
		return model.Task{}, repository.ErrFailedToInsert
	}

	interval := opt.RecurrenceInterval
	if interval < 1 {
		interval = 1
	}
	pattern := opt.RecurrencePattern
	if pattern == "" {
		pattern = model.RecurrenceDaily
	}
	method := opt.GenerationMethod
	if method == "" {
		method = model.GenerationManual
	}
	anchor := ""
	if !opt.AnchorDate.IsZero() {
		anchor = datemath.FormatDate(opt.AnchorDate)
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO tasks (user_id, name, description, reminder_time, timezone, is_active, is_recurring,
			recurrence_pattern, recurrence_interval, days_of_week, anchor_date, generation_method,
			parent_request_id, created_at)
		VALUES (?, ?, ?, ?, ?, 1, 1, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		opt.UserID, opt.Name, opt.Description, opt.ReminderTime.String(), tzOrDefault(opt.Timezone),
		string(pattern), interval, opt.DaysOfWeek.Encode(), anchor, string(method),
		opt.ParentRequestID, now,
	).Scan(&id)
	if err != nil {
		r.l.Errorf(ctx, "task/repository/sqlite.CreateTask: insert task: %v", err)
		return model.Task{}, repository.ErrFailedToInsert
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO streaks (user_id, task_id, updated_at) VALUES (?, ?, ?)`, opt.UserID, id, now); err != nil {
		r.l.Errorf(ctx, "task/repository/sqlite.CreateTask: insert streak: %v", err)
		return model.Task{}, repository.ErrFailedToInsert
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "task/repository/sqlite.CreateTask: commit: %v", err)
		return model.Task{}, repository.ErrFailedToInsert
	}

	return model.Task{
		ID:                 id,
		UserID:             opt.UserID,
		Name:               opt.Name,
		Description:        opt.Description,
		ReminderTime:       opt.ReminderTime,
		Timezone:           tzOrDefault(opt.Timezone),
		IsActive:           true,
		IsRecurring:        true,
		RecurrencePattern:  pattern,
		RecurrenceInterval: interval,
		DaysOfWeek:         opt.DaysOfWeek,
		AnchorDate:         opt.AnchorDate,
		GenerationMethod:   method,
		ParentRequestID:    opt.ParentRequestID,
		CreatedAt:          now,
	}, nil
}

func (r *implRepository) GetTask(ctx context.Context, id int64) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "task/repository/sqlite.GetTask: %v", err)
		return model.Task{}, repository.ErrFailedToGet
	}
	return t, nil
}

func (r *implRepository) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`
	args := []interface{}{opt.UserID}
	if opt.ActiveOnly {
		q += ` AND is_active = 1`
	}
	if opt.ParentRequestID != "" {
		q += ` AND parent_request_id = ?`
		args = append(args, opt.ParentRequestID)
	}
	q += ` ORDER BY created_at, id`
	return r.list(ctx, "ListTasks", q, args...)
}

func (r *implRepository) ListActiveTasks(ctx context.Context) ([]model.Task, error) {
	return r.list(ctx, "ListActiveTasks", `SELECT `+taskColumns+` FROM tasks WHERE is_active = 1 ORDER BY id`)
}

func (r *implRepository) list(ctx context.Context, op, q string, args ...interface{}) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		r.l.Errorf(ctx, "task/repository/sqlite.%s: %v", op, err)
		return nil, repository.ErrFailedToList
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			r.l.Errorf(ctx, "task/repository/sqlite.%s: scan: %v", op, err)
			return nil, repository.ErrFailedToList
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "task/repository/sqlite.%s: %v", op, err)
		return nil, repository.ErrFailedToList
	}
	return out, nil
}

func (r *implRepository) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) (model.Task, error) {
	var (
		sets []string
		args []interface{}
	)
	add := func(col string, v interface{}) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if opt.Name != nil {
		add("name", *opt.Name)
	}
	if opt.Description != nil {
		add("description", *opt.Description)
	}
	if opt.ReminderTime != nil {
		add("reminder_time", opt.ReminderTime.String())
	}
	if opt.Timezone != nil {
		add("timezone", tzOrDefault(*opt.Timezone))
	}
	if opt.IsActive != nil {
		add("is_active", *opt.IsActive)
	}
	if opt.CalendarEventID != nil {
		add("calendar_event_id", *opt.CalendarEventID)
	}

	if len(sets) > 0 {
		args = append(args, opt.ID)
		if _, err := r.db.ExecContext(ctx,
			`UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
			r.l.Errorf(ctx, "task/repository/sqlite.UpdateTask: %v", err)
			return model.Task{}, repository.ErrFailedToUpdate
		}
	}
	return r.GetTask(ctx, opt.ID)
}

func (r *implRepository) DeleteTask(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		r.l.Errorf(ctx, "task/repository/sqlite.DeleteTask: %v", err)
		return repository.ErrFailedToDelete
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(sc scanner) (model.Task, error) {
	var (
		t       model.Task
		at      string
		pattern string
		method  string
		days    string
		anchor  string
	)
	err := sc.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &at, &t.Timezone, &t.IsActive, &t.IsRecurring,
		&pattern, &t.RecurrenceInterval, &days, &anchor, &method,
		&t.ParentRequestID, &t.CalendarEventID, &t.CreatedAt)
	if err != nil {
		return model.Task{}, err
	}

	t.RecurrencePattern = model.RecurrencePattern(pattern)
	t.GenerationMethod = model.GenerationMethod(method)
	if t.ReminderTime, err = model.ParseClock(at); err != nil {
		return model.Task{}, err
	}
	if t.DaysOfWeek, err = model.ParseWeekdaySet(days); err != nil {
		return model.Task{}, err
	}
	if anchor != "" {
		if t.AnchorDate, err = datemath.ParseDate(anchor); err != nil {
			return model.Task{}, err
		}
	}
	return t, nil
}

func tzOrDefault(tz string) string {
	if tz == "" {
		return model.DefaultTimezone
	}
	return tz
}
