package module

import (
	"time"

	"promptstash/internal/platform/config"
)

// Options carries the auth knobs, validated once at startup
type Options struct {
	BotToken        string
	CookieName      string
	SessionTTL      time.Duration
	Env             string // dev or prod, controls the Secure cookie flag
	LoginRatePerMin int
	RateLimitOn     bool
}

// FromConfig reads AUTH_* values (and the CORE_API_ENV tag) from process config
func FromConfig(root config.Conf) Options {
	ac := root.Prefix("AUTH_")
	return Options{
		BotToken:        ac.MayString("BOT_TOKEN", ""),
		CookieName:      ac.MayString("COOKIE_NAME", "session_token"),
		SessionTTL:      ac.MayDuration("SESSION_TTL", 720*time.Hour),
		Env:             root.Prefix("CORE_API_").MayEnum("ENV", "dev", "dev", "prod"),
		LoginRatePerMin: ac.MayInt("LOGIN_RATE_PER_MIN", 10),
		RateLimitOn:     ac.MayBool("RATE_LIMIT", true),
	}
}
