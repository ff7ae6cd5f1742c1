// Package api mounts the versioned HTTP API
package api

import (
	"time"

	"fertilitydash/internal/core/fertility"
	"fertilitydash/internal/core/figures"
	"fertilitydash/internal/platform/config"
	"fertilitydash/internal/platform/logger"
	phttp "fertilitydash/internal/platform/net/http"

	"fertilitydash/internal/modkit"
	"fertilitydash/internal/modkit/httpkit"
	"fertilitydash/internal/modkit/module"
	"fertilitydash/internal/modkit/swaggerkit"

	fertilitymod "fertilitydash/internal/services/api/fertility/module"
	metamod "fertilitydash/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Logger        *logger.Logger
	Source        fertility.Source
	Figures       figures.Config
	Stack         httpkit.StackOptions
	EnableSwagger bool
	Profiler      phttp.ProfilerOptions

	// MaxInFlight caps concurrent fertility requests, each of which fetches
	// upstream at least once; 0 is no cap
	MaxInFlight int
	// InFlightWait is how long an over-cap request queues before a 429
	InFlightWait time.Duration
}

// Mount mounts the API onto r and returns the modules so callers can pull
// ports out of them
func Mount(r phttp.Router, opt Options) []module.Module {
	deps := modkit.Deps{
		Cfg:     opt.Config,
		Source:  opt.Source,
		Figures: opt.Figures,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	mods := []module.Module{
		metamod.New(deps, modkit.WithSwagger(opt.EnableSwagger)),
		fertilitymod.New(deps,
			modkit.WithSwagger(opt.EnableSwagger),
			modkit.WithMiddlewares(httpkit.Throttle(opt.MaxInFlight, opt.InFlightWait)...),
		),
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, opt.Profiler)

	httpkit.MountAPIV1(r, httpkit.Stack(opt.Stack), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	if opt.Logger != nil {
		opt.Logger.Info().
			Strs("modules", module.Names(mods)).
			Bool("swagger", opt.EnableSwagger).
			Bool("profiler", opt.Profiler.Enabled).
			Int("max_inflight", opt.MaxInFlight).
			Msg("api mounted")
		for _, rt := range phttp.Routes(r) {
			opt.Logger.Debug().Str("method", rt.Method).Str("pattern", rt.Pattern).Msg("route")
		}
	}
	return mods
}
