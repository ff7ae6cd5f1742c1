// Package main provides the CLI entry point for fertility-figures.
package main

import (
	"context"
	"os"
	"os/signal"

	"fertilitydash/internal/adapters/ingest/worldbank"
	"fertilitydash/internal/core/figures"
	"fertilitydash/internal/modkit"
	"fertilitydash/internal/modkit/module"
	"fertilitydash/internal/platform/config"
	perr "fertilitydash/internal/platform/errors"
	"fertilitydash/internal/platform/logger"
	"fertilitydash/internal/services/api/fertility/domain"
	fertilitymod "fertilitydash/internal/services/api/fertility/module"
)

func main() {
	root := config.New()
	l := logger.Named("cli")

	// same module the api mounts, minus routes
	mod := fertilitymod.New(modkit.Deps{
		Cfg:     root,
		Source:  worldbank.NewClient(worldbank.FromConfig(root.Prefix("WORLDBANK_"))),
		Figures: figures.FromConfig(root.Prefix("FIGURES_")),
	}, modkit.WithSwagger(false))
	svc := module.MustPortsOf[domain.ServicePort](mod)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(svc, os.Stdout).ExecuteContext(ctx); err != nil {
		ev := l.Error().Err(err).
			Stringer("code", perr.CodeOf(err)).
			Bool("retryable", perr.Retryable(err))
		if e, ok := perr.As(err); ok && e.Op() != "" {
			ev = ev.Str("op", e.Op())
		}
		ev.Msg("fertility-figures failed")
		stop()
		os.Exit(1)
	}
}
