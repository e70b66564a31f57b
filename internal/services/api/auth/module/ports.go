package module

import (
	"net/http"

	"promptstash/internal/services/api/auth/domain"
)

// Ports exposes the auth surfaces other modules compose with
type Ports struct {
	// Gate is the session middleware, the single producer of 401
	Gate func(http.Handler) http.Handler
	// Require builds the status-then-level authorization middleware
	Require func(levels ...domain.AccessLevel) func(http.Handler) http.Handler
	// Service is the auth service port for direct calls
	Service domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
