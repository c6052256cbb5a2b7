package config

import (
	"errors"
	"fmt"
	"time"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
	"dpanic": true, "panic": true, "fatal": true,
}

// Validate checks the fields the process cannot start without.
func (c *Config) Validate() error {
	var errs []error

	if c.Telegram.BotToken == "" {
		errs = append(errs, errors.New("telegram.bot_token is required"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if !validLogLevels[c.Logger.Level] {
		errs = append(errs, fmt.Errorf("logger.level %q is invalid", c.Logger.Level))
	}
	if c.LLM.MaxTokens < 50 || c.LLM.MaxTokens > 4000 {
		errs = append(errs, fmt.Errorf("llm.max_tokens must be within 50..4000, got %d", c.LLM.MaxTokens))
	}
	if c.Image.MaxSizeMB < 1 || c.Image.MaxSizeMB > 25 {
		errs = append(errs, fmt.Errorf("image.max_size_mb must be within 1..25, got %d", c.Image.MaxSizeMB))
	}
	if c.Quota.DailyLimit < 1 {
		errs = append(errs, errors.New("quota.daily_limit must be at least 1"))
	}
	if _, err := time.LoadLocation(c.Bot.DefaultTimezone); err != nil || c.Bot.DefaultTimezone == "" {
		errs = append(errs, fmt.Errorf("bot.default_timezone %q is not a valid IANA zone", c.Bot.DefaultTimezone))
	}
	if err := validateLLMConfig(&c.LLM); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return errors.New("no LLM providers configured, add an llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}
		if !provider.Enabled {
			continue
		}

		enabledCount++
		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true
	}

	if enabledCount == 0 {
		return errors.New("no enabled LLM providers")
	}

	for _, d := range []struct{ key, val string }{
		{"llm.retry_delay", cfg.RetryDelay},
		{"llm.max_total_timeout", cfg.MaxTotalTimeout},
	} {
		if d.val == "" {
			continue
		}
		if _, err := time.ParseDuration(d.val); err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
	}

	return nil
}

// RetryDelayDuration parses llm.retry_delay, defaulting to one second.
func (l LLMConfig) RetryDelayDuration() time.Duration {
	return parseDurationOr(l.RetryDelay, time.Second)
}

// MaxTotalTimeoutDuration parses llm.max_total_timeout, defaulting to a minute.
func (l LLMConfig) MaxTotalTimeoutDuration() time.Duration {
	return parseDurationOr(l.MaxTotalTimeout, time.Minute)
}

func parseDurationOr(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
