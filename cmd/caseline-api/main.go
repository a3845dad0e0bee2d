// @title         Caseline API
// @version       0.1.0
// @description   Orders, products and the cases their units are packed into
// @BasePath      /api/v1

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"caseline/internal/modkit"
	"caseline/internal/platform/config"
	"caseline/internal/platform/logger"
	phttp "caseline/internal/platform/net/http"
	"caseline/internal/services/api"

	"golang.org/x/sync/errgroup"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, closeStore, err := modkit.Open(ctx, root, apiCfg, "api")
	if err != nil {
		l.Panic().Err(err).Msg("deps open failed")
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_SHUTDOWN_GRACE)
	srv := phttp.NewServer(apiCfg)

	app := api.Mount(ctx, srv.Router(), api.Options{
		Config:         apiCfg,
		Deps:           deps,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		Sweep:          apiCfg.MayBool("SWEEP", false),
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error { return app.Run(ctx) })
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		l.Panic().Err(err).Msg("api stopped")
	}
	l.Info().Msg("api stopped")
}
