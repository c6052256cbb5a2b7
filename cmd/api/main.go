package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"habit-streak-bot/config"
	dbsqlite "habit-streak-bot/config/sqlite"
	_ "habit-streak-bot/docs" // Swagger docs
	"habit-streak-bot/internal/completion"
	completionUC "habit-streak-bot/internal/completion/usecase"
	"habit-streak-bot/internal/conversation"
	convRepo "habit-streak-bot/internal/conversation/repository/sqlite"
	"habit-streak-bot/internal/conversation/store"
	convUC "habit-streak-bot/internal/conversation/usecase"
	"habit-streak-bot/internal/httpserver"
	"habit-streak-bot/internal/intent"
	"habit-streak-bot/internal/personality"
	quotaRepo "habit-streak-bot/internal/quota/repository/sqlite"
	quotaUC "habit-streak-bot/internal/quota/usecase"
	"habit-streak-bot/internal/reminder"
	reminderUC "habit-streak-bot/internal/reminder/usecase"
	"habit-streak-bot/internal/schedule"
	streakRepo "habit-streak-bot/internal/streak/repository/sqlite"
	streakUC "habit-streak-bot/internal/streak/usecase"
	"habit-streak-bot/internal/task"
	tgDelivery "habit-streak-bot/internal/task/delivery/telegram"
	taskGCal "habit-streak-bot/internal/task/repository/gcalendar"
	taskRepo "habit-streak-bot/internal/task/repository/sqlite"
	taskUC "habit-streak-bot/internal/task/usecase"
	userRepo "habit-streak-bot/internal/user/repository/sqlite"
	userUC "habit-streak-bot/internal/user/usecase"
	"habit-streak-bot/internal/webhook"
	"habit-streak-bot/pkg/gcalendar"
	"habit-streak-bot/pkg/llmprovider"
	"habit-streak-bot/pkg/log"
	"habit-streak-bot/pkg/telegram"
)

// @title       Habit Streak Bot API
// @description Telegram habit tracker with natural language scheduling, reminders and photo-verified streaks.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Habit Streak Bot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Storage
	db, err := dbsqlite.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Errorf(ctx, "Failed to open database %s: %v", cfg.Database.Path, err)
		os.Exit(1)
	}
	defer func() {
		if err := dbsqlite.Disconnect(db); err != nil {
			logger.Warnf(ctx, "Failed to close database: %v", err)
		}
	}()
	logger.Infof(ctx, "Database ready at %s", cfg.Database.Path)

	// 4. Model providers (optional: without them only rule parsing runs)
	llm := initLLM(ctx, logger, cfg.LLM)

	// 5. Domain
	bot := telegram.NewBot(cfg.Telegram.BotToken)
	voice := personality.MustNew(nil)

	telegramHandler, reminders, conversations := wire(ctx, logger, cfg, db, bot, voice, llm)

	// 6. Webhook registration
	registerWebhook(ctx, logger, cfg.Telegram, bot)

	// 7. Background jobs
	reminders.Start(ctx, cfg.Scheduler.ReloadInterval)
	defer reminders.Stop()
	conversations.StartSweeper(ctx, cfg.Conversation.SweepInterval)

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		DB:              db,
		TelegramHandler: telegramHandler,
		WebhookSecurity: webhook.SecurityConfig{
			Secret:          cfg.Telegram.WebhookSecret,
			AllowedIPs:      cfg.Webhook.AllowedIPs,
			RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
		},
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// wire builds repositories and use cases bottom-up and returns the pieces
// main still has to drive.
func wire(
	ctx context.Context,
	logger log.Logger,
	cfg *config.Config,
	db *sql.DB,
	bot *telegram.Bot,
	voice *personality.Voice,
	llm llmprovider.Generator,
) (tgDelivery.Handler, reminder.UseCase, conversation.UseCase) {
	users := userRepo.New(db, logger)
	tasks := taskRepo.New(db, logger)

	streaks := streakUC.New(logger, streakRepo.New(db, logger))
	reminders := reminderUC.New(logger, tasks, users, streaks, voice, bot)
	taskUseCase := taskUC.New(logger, tasks, reminders, streaks, initMirror(ctx, logger, cfg.GoogleCalendar))
	userUseCase := userUC.New(logger, users, taskUseCase, cfg.Bot.DefaultTimezone)
	quotas := quotaUC.New(logger, quotaRepo.New(db, logger), cfg.Quota.DailyLimit, cfg.Quota.BurstPerMinute)

	conversations := convUC.New(logger, convUC.Deps{
		Store:   store.New(convRepo.New(db, logger), logger, cfg.Conversation.CacheSize, cfg.Conversation.Timeout),
		Parser:  intent.New(llm, logger),
		Engine:  schedule.New(),
		Voice:   voice,
		Users:   userUseCase,
		Tasks:   taskUseCase,
		Quota:   quotas,
		Timeout: cfg.Conversation.Timeout,
	})

	completions := completionUC.New(logger, completionUC.Deps{
		Tasks:     taskUseCase,
		Streaks:   streaks,
		Quota:     quotas,
		Verifier:  completion.NewVerifier(logger, llm),
		Images:    bot,
		MaxSizeMB: cfg.Image.MaxSizeMB,
	})

	handler := tgDelivery.New(logger, tgDelivery.Deps{
		Bot:             bot,
		Users:           userUseCase,
		Tasks:           taskUseCase,
		Streaks:         streaks,
		Reminders:       reminders,
		Completions:     completions,
		Conversation:    conversations,
		Quota:           quotas,
		Voice:           voice,
		DefaultTimezone: cfg.Bot.DefaultTimezone,
		MaxImageSizeMB:  cfg.Image.MaxSizeMB,
	})

	return handler, reminders, conversations
}

// initLLM returns nil when no provider could be initialized.
func initLLM(ctx context.Context, logger log.Logger, cfg config.LLMConfig) llmprovider.Generator {
	providers, initErrs, err := llmprovider.InitializeProviders(&cfg)
	for _, e := range initErrs {
		logger.Warnf(ctx, "LLM provider skipped: %v", e)
	}
	if err != nil {
		logger.Warnf(ctx, "No LLM provider available, falling back to rule parsing: %v", err)
		return nil
	}

	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      cfg.RetryDelayDuration(),
		MaxTotalTimeout: cfg.MaxTotalTimeoutDuration(),
	}, logger)
	logger.Infof(ctx, "LLM providers: %v", manager.Providers())
	return manager
}

// initMirror returns nil when the calendar is not configured or unusable.
func initMirror(ctx context.Context, logger log.Logger, cfg config.GoogleCalendarConfig) task.CalendarMirror {
	if !cfg.Enabled() {
		return nil
	}
	client, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.CredentialsPath, cfg.TokenPath)
	if err != nil {
		logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
		logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
		return nil
	}
	logger.Info(ctx, "✅ Google Calendar initialized")
	return taskGCal.New(client, cfg.CalendarID)
}

// registerWebhook auto-detects ngrok when no URL is configured.
func registerWebhook(ctx context.Context, logger log.Logger, cfg config.TelegramConfig, bot *telegram.Bot) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" {
		ngrokURL, err := detectNgrokURL(ctx, "http://ngrok:4040")
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
			return
		}
		webhookURL = ngrokURL + "/webhook/telegram"
		logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
	}

	if err := bot.SetWebhook(ctx, webhookURL, cfg.WebhookSecret); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
}
