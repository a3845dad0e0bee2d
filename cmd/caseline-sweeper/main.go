package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"caseline/internal/modkit"
	"caseline/internal/modkit/module"
	"caseline/internal/platform/config"
	"caseline/internal/platform/logger"
	"caseline/internal/services/api"
	casesdom "caseline/internal/services/cases/domain"
	sweepermod "caseline/internal/services/sweeper/module"
	sweepersvc "caseline/internal/services/sweeper/service"
)

func main() {
	root := config.New()
	swCfg := root.Prefix("CORE_SWEEPER_")

	l := logger.Get()

	// Flags override CORE_SWEEPER_* when set
	var (
		fOrgs     = flag.String("orgs", "", "comma-separated organizations to sweep")
		fInterval = flag.Duration("interval", 0, "time between passes")
		fMinAge   = flag.Duration("min-age", 0, "only destroy empty cases older than this")
		fBatch    = flag.Int("batch", 0, "cases fetched per query")
		fConc     = flag.Int("concurrency", 0, "organizations swept at once")
		fDryRun   = flag.Bool("dryrun", false, "report empty cases without destroying them")
		fOnce     = flag.Bool("once", false, "run a single pass and exit")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, closeStore, err := modkit.Open(ctx, root, swCfg, "sweeper")
	if err != nil {
		l.Panic().Err(err).Msg("deps open failed")
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	mods := api.Assemble(ctx, deps)
	sw := sweepermod.New(deps, func(c *sweepersvc.Config) {
		if *fOrgs != "" {
			c.Orgs = splitCSV(*fOrgs)
		}
		setDuration(&c.Interval, *fInterval)
		setDuration(&c.MinAge, *fMinAge)
		setInt(&c.Batch, *fBatch)
		setInt(&c.Concurrency, *fConc)
		if *fDryRun {
			c.DryRun = true
		}
	}, modkit.WithPorts(sweepermod.Needs{
		Cases: module.MustPortsOf[casesdom.Sweeper](mods.Cases),
	}))
	mods.Registry.Register(sw)

	if *fOnce {
		rep, err := sw.Service().SweepOnce(ctx)
		l.Info().
			Int("orgs", rep.Orgs).
			Int("found", rep.Found).
			Int("destroyed", rep.Destroyed).
			Int("failed", rep.Failed).
			Msg("sweep pass done")
		if err != nil {
			l.Panic().Err(err).Msg("sweep failed")
		}
		return
	}

	if err := sw.Service().Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		l.Panic().Err(err).Msg("sweeper stopped")
	}
	l.Info().Msg("sweeper stopped")
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
