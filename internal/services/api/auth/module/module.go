// Package module wires auth into the API using modkit
package module

import (
	"net/http"

	modkit "promptstash/internal/modkit"
	"promptstash/internal/modkit/httpkit"
	str "promptstash/internal/platform/strings"

	"promptstash/internal/services/api/auth/domain"
	authhttp "promptstash/internal/services/api/auth/http"
	authrepo "promptstash/internal/services/api/auth/repo"
	authsvc "promptstash/internal/services/api/auth/service"
)

// Module implements the auth module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *authsvc.Svc
}

// New constructs the auth module from shared deps and its options
func New(deps modkit.Deps, opt Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("auth"), modkit.WithPrefix("/auth")}, opts...)...)

	cfg := authsvc.Config{
		BotToken:   opt.BotToken,
		CookieName: opt.CookieName,
		SessionTTL: opt.SessionTTL,
		Env:        opt.Env,
	}
	svc := authsvc.New(deps.PG, authrepo.NewPG(), cfg, deps.CH)
	h := authhttp.NewHandlers(svc, cfg)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{
		Gate:    h.Gate(),
		Require: func(levels ...domain.AccessLevel) func(http.Handler) http.Handler { return authhttp.Require(levels...) },
		Service: svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		authhttp.Register(r, h)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
