package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	perr "promptstash/internal/platform/errors"
	phttp "promptstash/internal/platform/net/http"
	"promptstash/internal/services/api/auth/domain"
	svc "promptstash/internal/services/api/auth/service"
)

// fakeSvc scripts the service behind the handlers
type fakeSvc struct {
	loginOut  domain.AuthResponse
	loginErr  error
	logoutOK  bool
	sessions  map[string]domain.Identity
	logoutLog []string
}

func (f *fakeSvc) Login(_ context.Context, _ domain.LoginInput) (domain.AuthResponse, error) {
	return f.loginOut, f.loginErr
}

func (f *fakeSvc) Logout(_ context.Context, token string) (bool, error) {
	f.logoutLog = append(f.logoutLog, token)
	return f.logoutOK, nil
}

func (f *fakeSvc) Resolve(_ context.Context, token string) (domain.Identity, domain.Session, bool, error) {
	id, ok := f.sessions[token]
	if !ok {
		return domain.Identity{}, domain.Session{}, false, nil
	}
	return id, domain.Session{Token: token, UserID: id.ID}, true, nil
}

func testCfg(env string) svc.Config {
	return svc.Config{
		BotToken:   "secret",
		CookieName: "session_token",
		SessionTTL: 2 * time.Hour,
		Env:        env,
	}
}

func mount(f *fakeSvc, cfg svc.Config) http.Handler {
	m := chi.NewRouter()
	r := phttp.AdaptChi(m)
	Register(r, NewHandlers(f, cfg))
	return m
}

func sessionCookieOf(t *testing.T, res *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no %q cookie in response", name)
	return nil
}

const loginBody = `{"id":123456789,"first_name":"Ada","username":"ada","auth_date":1756500000,"hash":"c0ffee"}`

func TestLogin_SetsSessionCookie(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{loginOut: domain.AuthResponse{
		Token: "tok-abc",
		User:  domain.UserOut{ID: 123456789, Username: "ada", Role: "user", Status: "pending", AccessLevel: "user"},
	}}
	h := mount(f, testCfg("prod"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/telegram", strings.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"token":"tok-abc"`) {
		t.Fatalf("body missing token: %s", rec.Body.String())
	}

	c := sessionCookieOf(t, rec.Result(), "session_token")
	if c.Value != "tok-abc" {
		t.Fatalf("cookie value = %q", c.Value)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Fatalf("cookie attributes wrong: %+v", c)
	}
	if c.MaxAge != int((2 * time.Hour).Seconds()) {
		t.Fatalf("cookie MaxAge = %d", c.MaxAge)
	}
}

func TestLogin_DevCookieIsNotSecure(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{loginOut: domain.AuthResponse{Token: "tok"}}
	h := mount(f, testCfg("dev"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/telegram", strings.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)

	c := sessionCookieOf(t, rec.Result(), "session_token")
	if c.Secure {
		t.Fatalf("dev cookies must not be marked secure")
	}
	if !c.HttpOnly {
		t.Fatalf("cookies stay http only in every environment")
	}
}

func TestLogin_InvalidPayloadIs400(t *testing.T) {
	t.Parallel()

	h := mount(&fakeSvc{}, testCfg("prod"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/telegram", strings.NewReader(`{"id":1}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("rejected logins must not set cookies")
	}
}

func TestLogin_RejectedSignatureIs401WithoutCookie(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{loginErr: perr.Unauthorizedf("invalid login payload")}
	h := mount(f, testCfg("prod"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/telegram", strings.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("rejected logins must not set cookies")
	}
}

func TestLogout_ClearsCookieAndIsIdempotent(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{logoutOK: true}
	h := mount(f, testCfg("prod"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "tok-1"})
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"detail":"ok"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
	c := sessionCookieOf(t, rec.Result(), "session_token")
	if c.Value != "" || c.MaxAge >= 0 {
		t.Fatalf("logout must clear the cookie, got %+v", c)
	}
	if len(f.logoutLog) != 1 || f.logoutLog[0] != "tok-1" {
		t.Fatalf("logout token log = %v", f.logoutLog)
	}

	// no cookie at all still succeeds with the same shape
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, httptest.NewRequest(http.MethodPost, "/logout", nil))
	if rec2.Code != http.StatusOK {
		t.Fatalf("cookieless logout status = %d", rec2.Code)
	}
	if f.logoutLog[len(f.logoutLog)-1] != "" {
		t.Fatalf("cookieless logout should pass an empty token")
	}
}

func TestMe_RequiresSession(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{sessions: map[string]domain.Identity{
		"tok-live": {ID: 7, Username: "ada", Role: "user", Status: domain.StatusActive, AccessLevel: domain.LevelUser},
	}}
	h := mount(f, testCfg("prod"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous /me status = %d, want 401", rec.Code)
	}

	rec2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "tok-live"})
	h.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("authenticated /me status = %d body=%s", rec2.Code, rec2.Body.String())
	}
	if !strings.Contains(rec2.Body.String(), `"username":"ada"`) {
		t.Fatalf("profile body = %s", rec2.Body.String())
	}
}

func TestLoginCookie_RoundTripsToMe(t *testing.T) {
	t.Parallel()

	ident := domain.Identity{ID: 7, Username: "ada", Role: "user", Status: domain.StatusActive, AccessLevel: domain.LevelUser}
	f := &fakeSvc{
		loginOut: domain.AuthResponse{
			Token: "tok-rt",
			User:  domain.UserOut{ID: 7, Username: "ada", Role: "user", Status: "active", AccessLevel: "user"},
		},
		sessions: map[string]domain.Identity{"tok-rt": ident},
	}
	h := mount(f, testCfg("prod"))

	rec := httptest.NewRecorder()
	loginReq := httptest.NewRequest(http.MethodPost, "/telegram", strings.NewReader(loginBody))
	loginReq.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, loginReq)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d body=%s", rec.Code, rec.Body.String())
	}
	ck := sessionCookieOf(t, rec.Result(), "session_token")

	// present the issued cookie unchanged on the next request
	rec2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	h.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("/me with issued cookie status = %d body=%s", rec2.Code, rec2.Body.String())
	}
	if !strings.Contains(rec2.Body.String(), `"username":"ada"`) {
		t.Fatalf("round trip resolved a different identity: %s", rec2.Body.String())
	}
}
