// Command mcp serves the read-only habit tools over stdio for MCP clients.
// Logs go to stderr; stdout carries the protocol.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/mark3labs/mcp-go/server"

	"habit-streak-bot/config"
	dbsqlite "habit-streak-bot/config/sqlite"
	"habit-streak-bot/internal/intent"
	"habit-streak-bot/internal/mcptool"
	"habit-streak-bot/internal/schedule"
	"habit-streak-bot/internal/streak"
	streakRepo "habit-streak-bot/internal/streak/repository/sqlite"
	streakUC "habit-streak-bot/internal/streak/usecase"
	"habit-streak-bot/pkg/llmprovider"
	"habit-streak-bot/pkg/log"
)

const (
	serverName    = "habit-streak-bot"
	serverVersion = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config: ", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:    cfg.Logger.Level,
		Mode:     cfg.Logger.Mode,
		Encoding: cfg.Logger.Encoding,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var llm llmprovider.Generator
	if providers, _, err := llmprovider.InitializeProviders(&cfg.LLM); err == nil {
		llm = llmprovider.NewManager(providers, &llmprovider.Config{
			FallbackEnabled: cfg.LLM.FallbackEnabled,
			RetryAttempts:   cfg.LLM.RetryAttempts,
			RetryDelay:      cfg.LLM.RetryDelayDuration(),
			MaxTotalTimeout: cfg.LLM.MaxTotalTimeoutDuration(),
		}, logger)
	} else {
		logger.Warnf(ctx, "parse_habit runs on rules only: %v", err)
	}

	// streak_status is only offered when the bot database is reachable.
	var streaks streak.UseCase
	if _, statErr := os.Stat(cfg.Database.Path); statErr == nil {
		db, err := dbsqlite.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Warnf(ctx, "streak_status disabled: %v", err)
		} else {
			defer dbsqlite.Disconnect(db)
			streaks = streakUC.New(logger, streakRepo.New(db, logger))
		}
	} else {
		logger.Warnf(ctx, "streak_status disabled: no database at %s", cfg.Database.Path)
	}

	s := mcptool.NewServer(serverName, serverVersion, logger, mcptool.Deps{
		Parser:          intent.New(llm, logger),
		Engine:          schedule.New(),
		Streaks:         streaks,
		DefaultTimezone: cfg.Bot.DefaultTimezone,
	})

	stdio := server.NewStdioServer(s)
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		logger.Errorf(ctx, "MCP server stopped: %v", err)
		os.Exit(1)
	}
}
