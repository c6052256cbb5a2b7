package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Storage
	Database DatabaseConfig

	// Bot
	Telegram     TelegramConfig
	Bot          BotConfig
	Quota        QuotaConfig
	Image        ImageConfig
	Scheduler    SchedulerConfig
	Conversation ConversationConfig

	// Optional calendar mirror
	GoogleCalendar GoogleCalendarConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type DatabaseConfig struct {
	Path         string
	MaxOpenConns int
	BusyTimeout  time.Duration
}

type TelegramConfig struct {
	BotToken      string
	WebhookURL    string
	WebhookSecret string
}

type BotConfig struct {
	DefaultTimezone string
}

type QuotaConfig struct {
	DailyLimit     int
	BurstPerMinute int
}

type ImageConfig struct {
	MaxSizeMB int
}

type SchedulerConfig struct {
	ReloadInterval time.Duration
}

type ConversationConfig struct {
	Timeout       time.Duration
	CacheSize     int
	SweepInterval time.Duration
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarID      string
}

// Enabled reports whether the calendar mirror is configured.
func (g GoogleCalendarConfig) Enabled() bool {
	return g.CredentialsPath != ""
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
	MaxTokens       int              `yaml:"max_tokens"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

type WebhookConfig struct {
	AllowedIPs      []string
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/habitbot/
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/habitbot/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v), nil
}

// fromViper builds a Config from an already populated viper instance.
func fromViper(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Storage
	cfg.Database.Path = v.GetString("database.path")
	cfg.Database.MaxOpenConns = v.GetInt("database.max_open_conns")
	cfg.Database.BusyTimeout = v.GetDuration("database.busy_timeout")

	// Telegram
	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = v.GetString("telegram.webhook_secret")
	if tgToken := v.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	if secret := v.GetString("telegram_webhook_secret"); secret != "" {
		cfg.Telegram.WebhookSecret = secret
	}

	// Bot behaviour
	cfg.Bot.DefaultTimezone = v.GetString("bot.default_timezone")
	cfg.Quota.DailyLimit = v.GetInt("quota.daily_limit")
	cfg.Quota.BurstPerMinute = v.GetInt("quota.burst_per_minute")
	cfg.Image.MaxSizeMB = v.GetInt("image.max_size_mb")
	cfg.Scheduler.ReloadInterval = v.GetDuration("scheduler.reload_interval")
	cfg.Conversation.Timeout = v.GetDuration("conversation.timeout")
	cfg.Conversation.CacheSize = v.GetInt("conversation.cache_size")
	cfg.Conversation.SweepInterval = v.GetDuration("conversation.sweep_interval")

	// Calendar mirror
	cfg.GoogleCalendar.CredentialsPath = v.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = v.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarID = v.GetString("google_calendar.calendar_id")
	if googleCreds := v.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = v.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = v.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = v.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = v.GetString("llm.max_total_timeout")
	cfg.LLM.MaxTokens = v.GetInt("llm.max_tokens")

	if v.IsSet("llm.providers") {
		if providersList, ok := v.Get("llm.providers").([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(v, getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					})
				}
			}
		}
	}
	// Single-provider shortcut for container deployments
	if len(cfg.LLM.Providers) == 0 {
		if key := v.GetString("gemini_api_key"); key != "" {
			cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
				Name: "gemini", Enabled: true, Priority: 1, APIKey: key, Model: "gemini-2.5-flash",
			})
		}
	}

	// Webhooks
	cfg.Webhook.RateLimitPerMin = v.GetInt("webhook.rate_limit_per_min")

	// Split allowed IPs since viper might not parse array seamlessly from env
	var ips []string
	if rawIps := v.GetString("webhook.allowed_ips"); rawIps != "" {
		for _, ip := range strings.Split(rawIps, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				ips = append(ips, ip)
			}
		}
	} else {
		ips = v.GetStringSlice("webhook.allowed_ips")
	}
	cfg.Webhook.AllowedIPs = ips

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("database.path", "data/habitbot.db")
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.busy_timeout", "5s")

	v.SetDefault("bot.default_timezone", "UTC")
	v.SetDefault("quota.daily_limit", 50)
	v.SetDefault("quota.burst_per_minute", 5)
	v.SetDefault("image.max_size_mb", 10)
	v.SetDefault("scheduler.reload_interval", "1h")
	v.SetDefault("conversation.timeout", "24h")
	v.SetDefault("conversation.cache_size", 1000)
	v.SetDefault("conversation.sweep_interval", "10m")
	v.SetDefault("google_calendar.calendar_id", "primary")
	v.SetDefault("google_calendar.token_path", "token.json")

	v.SetDefault("webhook.rate_limit_per_min", 60)

	// LLM defaults
	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("llm.retry_attempts", 3)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("llm.max_total_timeout", "60s")
	v.SetDefault("llm.max_tokens", 500)
}

// expandEnvVar expands values in the format ${VAR_NAME}
func expandEnvVar(v *viper.Viper, value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}

	envVar := value[2 : len(value)-1]
	if envValue := v.GetString(envVar); envValue != "" {
		return envValue
	}
	if envValue := v.GetString(strings.ToLower(envVar)); envValue != "" {
		return envValue
	}
	return os.Getenv(envVar)
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		switch n := val.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}
