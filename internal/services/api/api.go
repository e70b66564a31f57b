// Package api provides the HTTP API for the application
package api

import (
	"promptstash/internal/platform/config"
	"promptstash/internal/platform/logger"
	phttp "promptstash/internal/platform/net/http"
	"promptstash/internal/platform/net/middleware"
	"promptstash/internal/platform/ratelimit"
	"promptstash/internal/platform/store"

	"promptstash/internal/modkit"
	"promptstash/internal/modkit/httpkit"
	"promptstash/internal/modkit/module"
	"promptstash/internal/modkit/repokit"
	"promptstash/internal/modkit/swaggerkit"

	adminmod "promptstash/internal/services/api/admin/module"
	authmod "promptstash/internal/services/api/auth/module"
	metamod "promptstash/internal/services/api/meta/module"
	promptsmod "promptstash/internal/services/api/prompts/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules; transactions stamp the acting user into the
	// app.actor_id session setting for in-database auditing
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  repokit.WithBeginHooks(opt.Store.PG, repokit.ActorStamp),
		CH:  opt.Store.CH,
	}

	// Construct auth first and extract its gate and policy ports
	authOpts := authmod.FromConfig(deps.Cfg)
	auth := authmod.New(deps, authOpts)
	ports := module.MustPortsOf[authmod.Ports](auth)

	mods := []module.Module{
		metamod.New(deps),
		auth,
		promptsmod.New(deps, modkit.WithPorts(promptsmod.Ports{
			Gate:    ports.Gate,
			Require: ports.Require,
		})),
		adminmod.New(deps, modkit.WithPorts(adminmod.Ports{
			Gate:    ports.Gate,
			Require: ports.Require,
		})),
	}

	stack := httpkit.CommonStack()
	if authOpts.RateLimitOn {
		// admission control for the login endpoint only
		stack = append(stack, httpkit.RateLimit(ratelimit.New(), middleware.RateLimitOptions{
			Limits: map[string]int{"/api/v1/auth/telegram": authOpts.LoginRatePerMin},
		}))
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
