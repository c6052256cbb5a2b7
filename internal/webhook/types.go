package webhook

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret          string   // Expected X-Telegram-Bot-Api-Secret-Token value; empty disables the check
	AllowedIPs      []string // IP whitelist (optional)
	RateLimitPerMin int      // Max requests per minute per source IP
}
