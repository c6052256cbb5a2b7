package httpserver

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"habit-streak-bot/internal/middleware"
	tgDelivery "habit-streak-bot/internal/task/delivery/telegram"
	"habit-streak-bot/internal/webhook"
	"habit-streak-bot/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	mw          middleware.Middleware

	// Readiness
	db *sql.DB

	// Bot
	telegramHandler tgDelivery.Handler
	webhookGuard    *webhook.Guard
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	DB          *sql.DB

	TelegramHandler tgDelivery.Handler
	WebhookSecurity webhook.SecurityConfig
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		mw:              middleware.New(logger),
		db:              cfg.DB,
		telegramHandler: cfg.TelegramHandler,
		webhookGuard:    webhook.NewGuard(cfg.WebhookSecurity, logger),
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
