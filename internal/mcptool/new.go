// Package mcptool exposes read-only habit tools over the Model Context Protocol.
package mcptool

import (
	"github.com/mark3labs/mcp-go/server"

	"habit-streak-bot/internal/intent"
	"habit-streak-bot/internal/schedule"
	"habit-streak-bot/internal/streak"
	pkgLog "habit-streak-bot/pkg/log"
)

// Deps are the collaborators the tools call into. Streaks may be nil, in
// which case streak_status is not registered.
type Deps struct {
	Parser  intent.Parser
	Engine  schedule.Engine
	Streaks streak.UseCase
	// DefaultTimezone is used when a call names no timezone.
	DefaultTimezone string
}

type tools struct {
	l         pkgLog.Logger
	parser    intent.Parser
	engine    schedule.Engine
	streaks   streak.UseCase
	defaultTZ string
}

// NewServer builds an MCP server with every tool registered.
func NewServer(name, version string, l pkgLog.Logger, d Deps) *server.MCPServer {
	s := server.NewMCPServer(name, version, server.WithToolCapabilities(false))
	Register(s, l, d)
	return s
}

// Register adds the habit tools to s.
func Register(s *server.MCPServer, l pkgLog.Logger, d Deps) {
	tz := d.DefaultTimezone
	if tz == "" {
		tz = "UTC"
	}
	t := &tools{l: l, parser: d.Parser, engine: d.Engine, streaks: d.Streaks, defaultTZ: tz}

	s.AddTool(parseHabitTool(), t.parseHabit)
	s.AddTool(previewScheduleTool(), t.previewSchedule)
	if t.streaks != nil {
		s.AddTool(streakStatusTool(), t.streakStatus)
	}
}
