// Package module wires user administration into the API using modkit
package module

import (
	"net/http"

	modkit "promptstash/internal/modkit"
	"promptstash/internal/modkit/httpkit"
	str "promptstash/internal/platform/strings"

	adminhttp "promptstash/internal/services/api/admin/http"
	adminrepo "promptstash/internal/services/api/admin/repo"
	adminsvc "promptstash/internal/services/api/admin/service"
	authdom "promptstash/internal/services/api/auth/domain"
)

// Ports declares the auth surfaces this module requires
type Ports struct {
	Gate    func(http.Handler) http.Handler
	Require func(levels ...authdom.AccessLevel) func(http.Handler) http.Handler
}

// Module implements the admin module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc adminsvc.Service
}

// New constructs the admin module; the auth ports arrive via modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("admin"), modkit.WithPrefix("/admin")}, opts...)...)

	authPorts, ok := b.Ports.(Ports)
	if !ok || authPorts.Gate == nil || authPorts.Require == nil {
		panic("admin module requires auth ports (Gate, Require)")
	}

	svc := adminsvc.New(deps.PG, adminrepo.NewPG(), deps.CH)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		// every admin endpoint sits behind the gate and the admin-only policy
		httpkit.Protected(r, authPorts.Gate, func(gr httpkit.Router) {
			gr.Group(func(ar httpkit.Router) {
				ar.Use(authPorts.Require(authdom.LevelAdmin))
				adminhttp.Register(ar, m.svc)
			})
		})
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

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
