package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/streak/repository"
	"habit-streak-bot/pkg/datemath"
)

const streakColumns = `s.id, s.user_id, s.task_id, s.current_streak, s.longest_streak, s.last_completion_date, s.updated_at`

const taskColumns = `t.id, t.name, t.is_active, t.is_recurring, t.recurrence_pattern, t.recurrence_interval, t.days_of_week, t.anchor_date, t.created_at`

func (r *implRepository) GetStreak(ctx context.Context, userID, taskID int64) (model.Streak, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+streakColumns+` FROM streaks s WHERE s.user_id = ? AND s.task_id = ?`, userID, taskID)

	s, err := scanStreak(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Streak{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "streak/repository/sqlite.GetStreak: %v", err)
		return model.Streak{}, repository.ErrFailedToGet
	}
	return s, nil
}

func (r *implRepository) SaveStreak(ctx context.Context, s model.Streak) (model.Streak, error) {
	var last interface{}
	if s.LastCompletionDate != nil {
		last = datemath.FormatDate(*s.LastCompletionDate)
	}
	s.UpdatedAt = r.now().UTC()

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO streaks (user_id, task_id, current_streak, longest_streak, last_completion_date, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, task_id) DO UPDATE SET
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			last_completion_date = excluded.last_completion_date,
			updated_at = excluded.updated_at
		RETURNING id`,
		s.UserID, s.TaskID, s.CurrentStreak, s.LongestStreak, last, s.UpdatedAt)
	if err := row.Scan(&s.ID); err != nil {
		r.l.Errorf(ctx, "streak/repository/sqlite.SaveStreak: %v", err)
		return model.Streak{}, repository.ErrFailedToUpdate
	}
	return s, nil
}

func (r *implRepository) GetStreakRecord(ctx context.Context, userID, taskID int64) (repository.StreakRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+streakColumns+`, `+taskColumns+`
		FROM streaks s JOIN tasks t ON t.id = s.task_id
		WHERE s.user_id = ? AND s.task_id = ?`, userID, taskID)

	rec, err := scanStreakRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.StreakRecord{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "streak/repository/sqlite.GetStreakRecord: %v", err)
		return repository.StreakRecord{}, repository.ErrFailedToGet
	}
	return rec, nil
}

func (r *implRepository) ListStreaks(ctx context.Context, userID int64) ([]repository.StreakRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+streakColumns+`, `+taskColumns+`
		FROM streaks s JOIN tasks t ON t.id = s.task_id
		WHERE s.user_id = ?
		ORDER BY s.current_streak DESC, s.longest_streak DESC, s.task_id`, userID)
	if err != nil {
		r.l.Errorf(ctx, "streak/repository/sqlite.ListStreaks: %v", err)
		return nil, repository.ErrFailedToList
	}
	defer rows.Close()

	var out []repository.StreakRecord
	for rows.Next() {
		rec, err := scanStreakRecord(rows)
		if err != nil {
			r.l.Errorf(ctx, "streak/repository/sqlite.ListStreaks: scan: %v", err)
			return nil, repository.ErrFailedToList
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "streak/repository/sqlite.ListStreaks: %v", err)
		return nil, repository.ErrFailedToList
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanStreak(sc scanner) (model.Streak, error) {
	var (
		s    model.Streak
		last sql.NullString
	)
	if err := sc.Scan(&s.ID, &s.UserID, &s.TaskID, &s.CurrentStreak, &s.LongestStreak, &last, &s.UpdatedAt); err != nil {
		return model.Streak{}, err
	}
	if err := setLast(&s, last); err != nil {
		return model.Streak{}, err
	}
	return s, nil
}

func scanStreakRecord(sc scanner) (repository.StreakRecord, error) {
	var (
		rec    repository.StreakRecord
		last   sql.NullString
		days   string
		anchor string
	)
	s, t := &rec.Streak, &rec.Task
	err := sc.Scan(
		&s.ID, &s.UserID, &s.TaskID, &s.CurrentStreak, &s.LongestStreak, &last, &s.UpdatedAt,
		&t.ID, &t.Name, &t.IsActive, &t.IsRecurring, &t.RecurrencePattern, &t.RecurrenceInterval, &days, &anchor, &t.CreatedAt,
	)
	if err != nil {
		return repository.StreakRecord{}, err
	}
	if err := setLast(s, last); err != nil {
		return repository.StreakRecord{}, err
	}
	t.UserID = s.UserID
	if t.DaysOfWeek, err = model.ParseWeekdaySet(days); err != nil {
		return repository.StreakRecord{}, err
	}
	if anchor != "" {
		if t.AnchorDate, err = datemath.ParseDate(anchor); err != nil {
			return repository.StreakRecord{}, err
		}
	}
	return rec, nil
}

func setLast(s *model.Streak, last sql.NullString) error {
	if !last.Valid || last.String == "" {
		return nil
	}
	d, err := datemath.ParseDate(last.String)
	if err != nil {
		return err
	}
	s.LastCompletionDate = &d
	return nil
}
