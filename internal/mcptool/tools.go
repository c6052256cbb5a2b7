package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"habit-streak-bot/internal/intent"
	"habit-streak-bot/internal/model"
	"habit-streak-bot/internal/schedule"
	"habit-streak-bot/internal/streak"
	"habit-streak-bot/internal/validation"
)

// ParseHabitArgs are the arguments of parse_habit.
type ParseHabitArgs struct {
	Text     string `json:"text" jsonschema:"required,description=Free-text habit request, e.g. 'run 3 times a week at 7am'"`
	UseModel bool   `json:"use_model" jsonschema:"description=Also ask the language model (rules only when false)"`
}

// PreviewScheduleArgs are the arguments of preview_schedule.
type PreviewScheduleArgs struct {
	Text        string   `json:"text" jsonschema:"required,description=Free-text habit request"`
	Description string   `json:"description" jsonschema:"description=Optional task description"`
	BusyDays    []string `json:"busy_days" jsonschema:"description=Weekday names to keep free, e.g. ['saturday']"`
	WindowStart string   `json:"window_start" jsonschema:"description=Earliest reminder time HH:MM"`
	WindowEnd   string   `json:"window_end" jsonschema:"description=Latest reminder time HH:MM"`
}

// StreakStatusArgs are the arguments of streak_status.
type StreakStatusArgs struct {
	UserID   int64  `json:"user_id" jsonschema:"required,description=Telegram user id"`
	Timezone string `json:"timezone" jsonschema:"description=IANA timezone used for day boundaries"`
}

func parseHabitTool() mcp.Tool {
	return mcp.NewTool("parse_habit",
		mcp.WithDescription(`parse_habit - read a habit request into a structured intent

Returns activity, frequency, count or days, time preference, confidence,
the fields still missing and the schedule pattern derived from it.`),
		mcp.WithInputSchema[ParseHabitArgs](),
	)
}

func previewScheduleTool() mcp.Tool {
	return mcp.NewTool("preview_schedule",
		mcp.WithDescription(`preview_schedule - show the reminders a habit request would create

Nothing is stored. Busy days and a time window are applied the same way the
bot applies them, then conflicts, suggestions and a load summary are listed.`),
		mcp.WithInputSchema[PreviewScheduleArgs](),
	)
}

func streakStatusTool() mcp.Tool {
	return mcp.NewTool("streak_status",
		mcp.WithDescription(`streak_status - report a user's streaks and the ones about to break`),
		mcp.WithInputSchema[StreakStatusArgs](),
	)
}

type patternView struct {
	Type         schedule.Type    `json:"type"`
	WeeklyCount  int              `json:"weekly_count,omitempty"`
	SpecificDays model.WeekdaySet `json:"specific_days,omitempty"`
	IntervalDays int              `json:"interval_days,omitempty"`
	TimeOfDay    *model.ClockTime `json:"time_of_day,omitempty"`
}

func viewPattern(p schedule.Pattern) patternView {
	return patternView{
		Type:         p.Type,
		WeeklyCount:  p.WeeklyCount,
		SpecificDays: p.SpecificDays,
		IntervalDays: p.IntervalDays,
		TimeOfDay:    p.TimeOfDay,
	}
}

type parseHabitResult struct {
	Intent      intent.Intent `json:"intent"`
	Pattern     patternView   `json:"pattern"`
	Issues      []string      `json:"issues,omitempty"`
	ModelCalled bool          `json:"model_called"`
}

func (t *tools) parseHabit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args ParseHabitArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if strings.TrimSpace(args.Text) == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	out := t.parser.Parse(ctx, intent.ParseInput{Text: args.Text, UseModel: args.UseModel})
	return jsonResult(parseHabitResult{
		Intent:      out.Intent,
		Pattern:     viewPattern(t.parser.Pattern(out.Intent)),
		Issues:      t.parser.Validate(out.Intent),
		ModelCalled: out.ModelCalled,
	})
}

type previewResult struct {
	Intent      intent.Intent            `json:"intent"`
	Tasks       []schedule.GeneratedTask `json:"tasks"`
	Conflicts   []string                 `json:"conflicts,omitempty"`
	Suggestions []string                 `json:"suggestions,omitempty"`
	Summary     schedule.Summary         `json:"summary"`
}

func (t *tools) previewSchedule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args PreviewScheduleArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if strings.TrimSpace(args.Text) == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	prefs, err := preferences(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in := t.parser.ParseRules(args.Text)
	if !in.HasFrequency() {
		return mcp.NewToolResultError("no frequency found; try 'daily', '3 times a week' or 'every monday'"), nil
	}
	if in.ActivityName == "" || !validation.ValidTaskName(in.ActivityName) {
		return mcp.NewToolResultError("no usable activity name found"), nil
	}

	tasks := t.engine.Generate(t.parser.Pattern(in), in.ActivityName, args.Description)
	tasks = t.engine.Optimize(tasks, prefs)
	return jsonResult(previewResult{
		Intent:      in,
		Tasks:       tasks,
		Conflicts:   t.engine.Validate(tasks),
		Suggestions: t.engine.SuggestImprovements(tasks),
		Summary:     t.engine.Summarize(tasks),
	})
}

func preferences(args PreviewScheduleArgs) (schedule.Preferences, error) {
	var prefs schedule.Preferences
	for _, name := range args.BusyDays {
		d, ok := model.ParseWeekday(name)
		if !ok {
			return prefs, fmt.Errorf("unknown weekday %q", name)
		}
		prefs.BusyDays = prefs.BusyDays.Add(d)
	}

	if args.WindowStart == "" && args.WindowEnd == "" {
		return prefs, nil
	}
	start, err := model.ParseClock(orDefault(args.WindowStart, "00:00"))
	if err != nil {
		return prefs, fmt.Errorf("window_start: %w", err)
	}
	end, err := model.ParseClock(orDefault(args.WindowEnd, "23:59"))
	if err != nil {
		return prefs, fmt.Errorf("window_end: %w", err)
	}
	if end.Before(start) {
		return prefs, fmt.Errorf("window_end %s is before window_start %s", end, start)
	}
	prefs.Window = &schedule.TimeWindow{Start: start, End: end}
	return prefs, nil
}

type streakView struct {
	TaskID        int64       `json:"task_id"`
	TaskName      string      `json:"task_name"`
	CurrentStreak int         `json:"current_streak"`
	LongestStreak int         `json:"longest_streak"`
	DaysSince     int         `json:"days_since_completion"`
	Risk          streak.Risk `json:"risk"`
	DaysRemaining int         `json:"days_remaining"`
}

type streakStatusResult struct {
	TotalTasks          int          `json:"total_tasks"`
	ActiveStreaks       int          `json:"active_streaks"`
	LongestStreak       int          `json:"longest_streak"`
	CompletionRate30d   float64      `json:"completion_rate_30d"`
	CadenceRate30d      float64      `json:"cadence_rate_30d"`
	RecentCompletions7d int          `json:"recent_completions_7d"`
	Streaks             []streakView `json:"streaks"`
}

func (t *tools) streakStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args StreakStatusArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.UserID <= 0 {
		return mcp.NewToolResultError("user_id is required"), nil
	}
	tz := orDefault(args.Timezone, t.defaultTZ)
	if !validation.ValidTimezone(tz) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown timezone %q", tz)), nil
	}
	sc := model.Scope{UserID: args.UserID, Timezone: tz}

	stats, err := t.streaks.Statistics(ctx, sc)
	if err != nil {
		t.l.Errorf(ctx, "mcptool.streakStatus.Statistics: %v", err)
		return mcp.NewToolResultError("could not load statistics"), nil
	}
	report, err := t.streaks.CheckMaintenance(ctx, sc)
	if err != nil {
		t.l.Errorf(ctx, "mcptool.streakStatus.CheckMaintenance: %v", err)
		return mcp.NewToolResultError("could not load streaks"), nil
	}

	res := streakStatusResult{
		TotalTasks:          stats.TotalTasks,
		ActiveStreaks:       stats.ActiveStreaks,
		LongestStreak:       stats.LongestStreak,
		CompletionRate30d:   stats.CompletionRate30d,
		CadenceRate30d:      stats.CadenceRate30d,
		RecentCompletions7d: stats.RecentCompletions7d,
		Streaks:             make([]streakView, 0, len(report)),
	}
	for _, m := range report {
		res.Streaks = append(res.Streaks, streakView{
			TaskID:        m.TaskID,
			TaskName:      m.TaskName,
			CurrentStreak: m.CurrentStreak,
			LongestStreak: m.LongestStreak,
			DaysSince:     m.DaysSince,
			Risk:          m.Risk,
			DaysRemaining: m.DaysRemaining,
		})
	}
	return jsonResult(res)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
