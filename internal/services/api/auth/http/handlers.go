// Package http provides http transport for auth
package http

import (
	stdhttp "net/http"

	perr "promptstash/internal/platform/errors"
	phttp "promptstash/internal/platform/net/http"
	"promptstash/internal/platform/net/http/bind"

	"promptstash/internal/modkit/httpkit"
	"promptstash/internal/services/api/auth/domain"
	svc "promptstash/internal/services/api/auth/service"
)

// Handlers owns the auth endpoints and the session cookie policy
type Handlers struct {
	svc svc.Service
	cfg svc.Config
}

// NewHandlers builds the auth handler set
func NewHandlers(s svc.Service, cfg svc.Config) *Handlers {
	return &Handlers{svc: s, cfg: cfg}
}

// Register mounts auth endpoints on the given router
// login and logout stay public, the profile endpoint sits behind the gate
func Register(r httpkit.Router, h *Handlers) {
	r.Post("/telegram", h.login)
	r.Post("/logout", h.logout)

	httpkit.Protected(r, h.Gate(), func(gr httpkit.Router) {
		httpkit.Get(gr, "/me", h.me)
	})
}

// swagger:route POST /auth/telegram Auth authTelegram
// @Summary Login with a Telegram widget assertion
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.LoginInput true "Assertion"
// @Success 200 {object} domain.AuthResponse "session issued"
// @Failure 401 "signature rejected or assertion stale"
// @Failure 429 "rate limited"
// @Router /auth/telegram [post]
func (h *Handlers) login(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseJSON[domain.LoginInput](r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	out, err := h.svc.Login(r.Context(), in)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	stdhttp.SetCookie(w, h.sessionCookie(out.Token, int(h.cfg.SessionTTL.Seconds())))
	phttp.RespondOK(w, r, out)
}

// swagger:route POST /auth/logout Auth authLogout
// @Summary Revoke the current session and clear the cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.LogoutResponse "always ok"
// @Router /auth/logout [post]
func (h *Handlers) logout(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	// absence of the cookie is fine, logout is idempotent
	token, _ := httpkit.SessionToken(r, h.cfg.CookieName)
	if _, err := h.svc.Logout(r.Context(), token); err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	stdhttp.SetCookie(w, h.sessionCookie("", -1))
	phttp.RespondOK(w, r, domain.LogoutResponse{Detail: "ok"})
}

// swagger:route GET /auth/me Auth authMe
// @Summary Current identity profile
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.UserOut "profile"
// @Failure 401 "not authenticated"
// @Router /auth/me [get]
func (h *Handlers) me(r *stdhttp.Request) (any, error) {
	id, ok := domain.IdentityFrom(r.Context())
	if !ok {
		return nil, perr.Unauthorizedf("not authenticated")
	}
	return domain.PublicProfile(id), nil
}

// sessionCookie builds the session cookie; maxAge < 0 clears it
func (h *Handlers) sessionCookie(token string, maxAge int) *stdhttp.Cookie {
	return &stdhttp.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   !h.cfg.Dev(),
		SameSite: stdhttp.SameSiteLaxMode,
	}
}
