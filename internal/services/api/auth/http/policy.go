package http

import (
	stdhttp "net/http"

	perr "promptstash/internal/platform/errors"
	phttp "promptstash/internal/platform/net/http"
	"promptstash/internal/services/api/auth/domain"
)

// Authorization denial reasons surfaced on 403 responses
const (
	ReasonStatusNotActive   = "status_not_active"
	ReasonInsufficientLevel = "insufficient_access_level"
)

// Require returns middleware enforcing the account status gate and then,
// when levels are given, the access level gate. The status gate always runs
// first, so an inactive admin is still rejected with the status reason
func Require(levels ...domain.AccessLevel) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			id, ok := domain.IdentityFrom(r.Context())
			if !ok {
				phttp.RespondError(w, r, perr.Unauthorizedf("not authenticated"))
				return
			}
			if id.Status != domain.StatusActive {
				phttp.RespondError(w, r, perr.ForbiddenReason(ReasonStatusNotActive, "account is not active"))
				return
			}
			if len(levels) > 0 && !levelIn(id.AccessLevel, levels) {
				phttp.RespondError(w, r, perr.ForbiddenReason(ReasonInsufficientLevel, "insufficient access level"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireActive enforces only the status gate
func RequireActive() func(stdhttp.Handler) stdhttp.Handler { return Require() }

func levelIn(l domain.AccessLevel, set []domain.AccessLevel) bool {
	for _, s := range set {
		if s == l {
			return true
		}
	}
	return false
}
