// @title         Fertility API
// @version       0.1.0
// @description   Total fertility rate charts and tables from the World Bank

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fertilitydash/internal/adapters/ingest/worldbank"
	"fertilitydash/internal/core/figures"
	"fertilitydash/internal/modkit/httpkit"
	"fertilitydash/internal/platform/config"
	"fertilitydash/internal/platform/logger"
	phttp "fertilitydash/internal/platform/net/http"
	"fertilitydash/internal/platform/net/middleware"

	"fertilitydash/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	wbCfg := root.Prefix("WORLDBANK_")
	figCfg := root.Prefix("FIGURES_")

	// bring up logging early
	l := logger.Get()

	// the figures config is checked here so a bad env fails at boot, not per request
	figs := figures.FromConfig(figCfg)
	if err := figs.Validate(); err != nil {
		l.Panic().Err(err).Msg("invalid FIGURES_* config")
	}

	wb := worldbank.NewClient(worldbank.FromConfig(wbCfg))
	l.Info().
		Str("base_url", wb.Options().BaseURL).
		Dur("timeout", wb.Options().Timeout).
		Str("focus", figs.FocusCountry).
		Msg("worldbank source ready")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:  apiCfg,
			Logger:  l,
			Source:  wb,
			Figures: figs,
			Stack: httpkit.StackOptions{
				CORS:    middleware.CORSOptions{AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", []string{"*"})},
				Timeout: apiCfg.MayDuration("REQUEST_TIMEOUT", 0),
				Slow:    apiCfg.MayDuration("SLOW_REQUEST", 0),
			},
			EnableSwagger: apiCfg.MayBool("SWAGGER", true),
			Profiler: phttp.ProfilerOptions{
				Enabled:     apiCfg.MayBool("PROFILER", false),
				AllowRemote: apiCfg.MayBool("PROFILER_REMOTE", false),
			},
			MaxInFlight:  apiCfg.MayInt("MAX_INFLIGHT", 8),
			InFlightWait: apiCfg.MayDuration("INFLIGHT_WAIT", 30*time.Second),
		},
	)

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
