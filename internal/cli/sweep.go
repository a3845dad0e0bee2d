package cli

import (
	"context"
	"errors"
	"time"

	"caseline/internal/modkit"
	"caseline/internal/modkit/module"
	"caseline/internal/services/api"
	casesdom "caseline/internal/services/cases/domain"
	sweepermod "caseline/internal/services/sweeper/module"
	sweepersvc "caseline/internal/services/sweeper/service"
)

// SweepOptions scopes a one-off sweep
type SweepOptions struct {
	Orgs   []string
	MinAge time.Duration
	DryRun bool
}

// Sweep runs one sweeper pass over opt.Orgs, or over CORE_SWEEPER_ORGS when empty
func Sweep(ctx context.Context, deps modkit.Deps, opt SweepOptions) (sweepersvc.Report, error) {
	runCtx, cancel := context.WithCancel(ctx)
	mods := api.Assemble(runCtx, deps)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = mods.Events.Run(runCtx)
	}()
	// cancel before waiting so queued events drain
	defer func() {
		cancel()
		<-done
	}()

	sw := sweepermod.New(deps, func(c *sweepersvc.Config) {
		if len(opt.Orgs) > 0 {
			c.Orgs = opt.Orgs
		}
		if opt.MinAge > 0 {
			c.MinAge = opt.MinAge
		}
		c.DryRun = c.DryRun || opt.DryRun
	}, modkit.WithPorts(sweepermod.Needs{
		Cases: module.MustPortsOf[casesdom.Sweeper](mods.Cases),
	}))
	if len(sw.Service().Config().Orgs) == 0 {
		return sweepersvc.Report{}, errors.New("sweep: no organizations, pass --org or set CORE_SWEEPER_ORGS")
	}
	return sw.Service().SweepOnce(ctx)
}
