package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"habit-streak-bot/internal/conversation"
	"habit-streak-bot/internal/conversation/repository"
	"habit-streak-bot/internal/schedule"
)

func (r *implRepository) Get(ctx context.Context, userID int64) (conversation.Conversation, error) {
	var (
		c       conversation.Conversation
		state   string
		rawCtx  string
		pending string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, state, context, pending_tasks, last_interaction, expires_at
		FROM dm_conversations WHERE user_id = ?`, userID).
		Scan(&c.UserID, &state, &rawCtx, &pending, &c.LastInteraction, &c.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return conversation.Conversation{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "conversation/repository/sqlite.Get: %v", err)
		return conversation.Conversation{}, repository.ErrFailedToGet
	}

	c.State = conversation.State(state)
	if err := decode(rawCtx, pending, &c); err != nil {
		// an unreadable row is treated as absent so the user can start over
		r.l.Warnf(ctx, "conversation/repository/sqlite.Get: user=%d: %v", userID, err)
		return conversation.Conversation{}, nil
	}
	return c, nil
}

func decode(rawCtx, pending string, c *conversation.Conversation) error {
	if !c.State.Valid() {
		return fmt.Errorf("unknown state %q", c.State)
	}
	if err := json.Unmarshal([]byte(rawCtx), &c.Context); err != nil {
		return fmt.Errorf("context: %w", err)
	}
	var tasks []schedule.GeneratedTask
	if err := json.Unmarshal([]byte(pending), &tasks); err != nil {
		return fmt.Errorf("pending tasks: %w", err)
	}
	c.PendingTasks = tasks
	return nil
}

func (r *implRepository) Save(ctx context.Context, c conversation.Conversation) error {
	rawCtx, err := json.Marshal(c.Context)
	if err != nil {
		r.l.Errorf(ctx, "conversation/repository/sqlite.Save: encode context: %v", err)
		return repository.ErrFailedToSave
	}
	tasks := c.PendingTasks
	if tasks == nil {
		tasks = []schedule.GeneratedTask{}
	}
	pending, err := json.Marshal(tasks)
	if err != nil {
		r.l.Errorf(ctx, "conversation/repository/sqlite.Save: encode pending tasks: %v", err)
		return repository.ErrFailedToSave
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO dm_conversations (user_id, state, context, pending_tasks, last_interaction, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			state = excluded.state,
			context = excluded.context,
			pending_tasks = excluded.pending_tasks,
			last_interaction = excluded.last_interaction,
			expires_at = excluded.expires_at`,
		c.UserID, string(c.State), string(rawCtx), string(pending), stamp(c.LastInteraction), stamp(c.ExpiresAt))
	if err != nil {
		r.l.Errorf(ctx, "conversation/repository/sqlite.Save: user=%d: %v", c.UserID, err)
		return repository.ErrFailedToSave
	}
	return nil
}

func (r *implRepository) Delete(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM dm_conversations WHERE user_id = ?`, userID); err != nil {
		r.l.Errorf(ctx, "conversation/repository/sqlite.Delete: user=%d: %v", userID, err)
		return repository.ErrFailedToDelete
	}
	return nil
}

func (r *implRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dm_conversations WHERE expires_at <= ?`, stamp(now))
	if err != nil {
		r.l.Errorf(ctx, "conversation/repository/sqlite.DeleteExpired: %v", err)
		return 0, repository.ErrFailedToDelete
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// stamp drops sub-second precision so stored times compare correctly as text.
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
