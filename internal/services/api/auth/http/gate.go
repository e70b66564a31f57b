package http

import (
	stdhttp "net/http"
	"strconv"

	"promptstash/internal/modkit/httpkit"
	perr "promptstash/internal/platform/errors"
	pnet "promptstash/internal/platform/net"
	phttp "promptstash/internal/platform/net/http"
	"promptstash/internal/platform/store"
	"promptstash/internal/services/api/auth/domain"
)

// Gate returns the session middleware. Routes mounted behind it require a
// resolvable session cookie; this is the single place that produces 401 for
// missing or invalid credentials. On success the identity and session are
// attached to the request context, immutable from there on
func (h *Handlers) Gate() func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			token, err := httpkit.SessionToken(r, h.cfg.CookieName)
			if err != nil {
				phttp.RespondError(w, r, err)
				return
			}

			id, sess, ok, err := h.svc.Resolve(r.Context(), token)
			if err != nil {
				phttp.RespondError(w, r, err)
				return
			}
			if !ok {
				// never issued, revoked, and expired all look the same here
				phttp.RespondError(w, r, perr.Unauthorizedf("invalid or expired session"))
				return
			}

			ctx := domain.WithAuth(r.Context(), id, sess)
			ctx = pnet.WithUser(ctx, strconv.FormatInt(id.ID, 10))
			ctx = store.WithActor(ctx, id.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
