package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	dbsqlite "habit-streak-bot/config/sqlite"
	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/streak/repository"
	"habit-streak-bot/pkg/datemath"
)

const completionColumns = `c.id, c.user_id, c.task_id, c.completion_date, c.image_reference, c.explanation, c.verified, c.confidence, c.created_at`

func (r *implRepository) CreateCompletion(ctx context.Context, c model.Completion) (model.Completion, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO completions (user_id, task_id, completion_date, image_reference, explanation, verified, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.UserID, c.TaskID, datemath.FormatDate(c.CompletionDate), c.ImageReference, c.Explanation, c.Verified, c.Confidence, c.CreatedAt)
	if err != nil {
		if dbsqlite.IsUniqueViolation(err) {
			return model.Completion{}, repository.ErrDuplicate
		}
		r.l.Errorf(ctx, "streak/repository/sqlite.CreateCompletion: %v", err)
		return model.Completion{}, repository.ErrFailedToInsert
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		r.l.Errorf(ctx, "streak/repository/sqlite.CreateCompletion: last id: %v", err)
		return model.Completion{}, repository.ErrFailedToInsert
	}
	return c, nil
}

func (r *implRepository) GetCompletion(ctx context.Context, userID, taskID int64, date time.Time) (model.Completion, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+completionColumns+`, '' FROM completions c
		WHERE c.user_id = ? AND c.task_id = ? AND c.completion_date = ?`,
		userID, taskID, datemath.FormatDate(date))

	rec, err := scanCompletion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Completion{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "streak/repository/sqlite.GetCompletion: %v", err)
		return model.Completion{}, repository.ErrFailedToGet
	}
	return rec.Completion, nil
}

func (r *implRepository) ListCompletions(ctx context.Context, opt repository.ListCompletionsOptions) ([]repository.CompletionRecord, error) {
	var (
		where = []string{"c.user_id = ?"}
		args  = []interface{}{opt.UserID}
	)
	if opt.TaskID != 0 {
		where = append(where, "c.task_id = ?")
		args = append(args, opt.TaskID)
	}
	if !opt.Since.IsZero() {
		where = append(where, "c.completion_date >= ?")
		args = append(args, datemath.FormatDate(opt.Since))
	}
	q := `SELECT ` + completionColumns + `, COALESCE(t.name, '')
		FROM completions c LEFT JOIN tasks t ON t.id = c.task_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY c.completion_date DESC, c.id DESC`
	if opt.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opt.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		r.l.Errorf(ctx, "streak/repository/sqlite.ListCompletions: %v", err)
		return nil, repository.ErrFailedToList
	}
	defer rows.Close()

	var out []repository.CompletionRecord
	for rows.Next() {
		rec, err := scanCompletion(rows)
		if err != nil {
			r.l.Errorf(ctx, "streak/repository/sqlite.ListCompletions: scan: %v", err)
			return nil, repository.ErrFailedToList
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "streak/repository/sqlite.ListCompletions: %v", err)
		return nil, repository.ErrFailedToList
	}
	return out, nil
}

func scanCompletion(sc scanner) (repository.CompletionRecord, error) {
	var (
		rec  repository.CompletionRecord
		date string
	)
	c := &rec.Completion
	if err := sc.Scan(&c.ID, &c.UserID, &c.TaskID, &date, &c.ImageReference, &c.Explanation,
		&c.Verified, &c.Confidence, &c.CreatedAt, &rec.TaskName); err != nil {
		return repository.CompletionRecord{}, err
	}
	d, err := datemath.ParseDate(date)
	if err != nil {
		return repository.CompletionRecord{}, err
	}
	c.CompletionDate = d
	return rec, nil
}
