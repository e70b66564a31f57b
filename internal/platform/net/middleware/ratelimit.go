package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	perr "promptstash/internal/platform/errors"
	pnet "promptstash/internal/platform/net"
	"promptstash/internal/platform/ratelimit"
)

// RateLimitOptions configures the admission middleware
type RateLimitOptions struct {
	// Limits maps an endpoint path prefix to its per minute request cap.
	// Paths without an entry are never limited
	Limits map[string]int
}

// RateLimit rejects over-limit requests with 429 and a Retry-After hint.
// Only endpoints present in opt.Limits are subject to admission control
func RateLimit(l *ratelimit.Limiter, opt RateLimitOptions,
	write func(w http.ResponseWriter, status int, body any),
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit, endpoint := limitFor(opt.Limits, r.URL.Path)
			if limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			if !l.Admit(ClientAddr(r), endpoint, limit, time.Now()) {
				w.Header().Set("Retry-After", strconv.Itoa(ratelimit.RetryAfterSeconds))
				status, body := pnet.Error(
					perr.TooManyRequestsf("too many requests"),
					pnet.RequestID(r.Context()),
				)
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// limitFor returns the configured cap for the longest matching prefix
func limitFor(limits map[string]int, path string) (int, string) {
	best := ""
	for prefix := range limits {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return 0, ""
	}
	return limits[best], best
}

// ClientAddr resolves the client address with a fixed precedence:
// first hop of X-Forwarded-For, then X-Real-IP, then the transport peer.
// An unresolvable address degrades to a shared "unknown" bucket rather
// than failing the request
func ClientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := fwd
		if i := strings.Index(fwd, ","); i >= 0 {
			first = fwd[:i]
		}
		if v := strings.TrimSpace(first); v != "" {
			return v
		}
	}
	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		return real
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if v := strings.TrimSpace(r.RemoteAddr); v != "" {
		return v
	}
	return "unknown"
}
