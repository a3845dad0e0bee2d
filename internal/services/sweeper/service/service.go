// Package service runs the empty case sweeper: cases that stayed empty past MinAge are
// destroyed in batches, organization by organization
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"caseline/internal/platform/config"
	perr "caseline/internal/platform/errors"
	"caseline/internal/platform/logger"
	"caseline/internal/platform/metrics"
	casesdom "caseline/internal/services/cases/domain"

	"golang.org/x/sync/errgroup"
)

// Source tags cases destroyed by the sweeper in metrics
const Source = "sweeper"

// Config controls sweeping
type Config struct {
	Interval    time.Duration
	MinAge      time.Duration
	Orgs        []string
	Batch       int
	Concurrency int
	DryRun      bool
}

// ConfigFrom reads CORE_SWEEPER_ settings
func ConfigFrom(cfg config.Conf) Config {
	c := cfg.Prefix("CORE_SWEEPER_")
	return Config{
		Interval:    c.MayDuration("INTERVAL", 10*time.Minute),
		MinAge:      c.MayDuration("MIN_AGE", time.Hour),
		Orgs:        c.MayCSV("ORGS", nil),
		Batch:       c.MayInt("BATCH", 200),
		Concurrency: c.MayInt("CONCURRENCY", 2),
		DryRun:      c.MayBool("DRYRUN", false),
	}
}

// Report sums one pass
type Report struct {
	Orgs      int `json:"orgs"`
	Found     int `json:"found"`
	Destroyed int `json:"destroyed"`
	Failed    int `json:"failed"`
}

// Svc sweeps empty cases
type Svc struct {
	cases   casesdom.Sweeper
	cfg     Config
	now     func() time.Time
	metrics *metrics.Metrics
}

// New creates a sweeper over cases
func New(cases casesdom.Sweeper, cfg Config, now func() time.Time, m *metrics.Metrics) *Svc {
	if cases == nil {
		panic("sweeper requires a cases port")
	}
	if now == nil {
		now = time.Now
	}
	if cfg.Batch <= 0 {
		cfg.Batch = 200
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Svc{cases: cases, cfg: cfg, now: now, metrics: m}
}

// Config returns the effective configuration
func (s *Svc) Config() Config { return s.cfg }

// Run sweeps every Interval until ctx ends. Failed passes are logged and retried on the
// next tick
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("sweeper")
	if len(s.cfg.Orgs) == 0 {
		log.Warn().Msg("no organizations configured, sweeper idle")
		<-ctx.Done()
		return ctx.Err()
	}
	interval := s.cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		rep, err := s.SweepOnce(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ev := log.Info()
		if err != nil {
			ev = log.Warn().Err(err)
		}
		ev.Int("orgs", rep.Orgs).Int("found", rep.Found).Int("destroyed", rep.Destroyed).Int("failed", rep.Failed).Msg("sweep pass")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// SweepOnce sweeps every configured organization once
func (s *Svc) SweepOnce(ctx context.Context) (Report, error) {
	return s.Sweep(ctx, s.cfg.Orgs)
}

// Sweep sweeps orgs with bounded concurrency. One organization failing does not stop
// the others; the returned error joins every failure
func (s *Svc) Sweep(ctx context.Context, orgs []string) (Report, error) {
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)

	var (
		mu   sync.Mutex
		rep  = Report{Orgs: len(orgs)}
		errs []error
	)
	for _, org := range orgs {
		g.Go(func() error {
			r, err := s.SweepOrg(ctx, org)
			mu.Lock()
			defer mu.Unlock()
			rep.Found += r.Found
			rep.Destroyed += r.Destroyed
			rep.Failed += r.Failed
			if err != nil {
				errs = append(errs, perr.WithOp(err, "sweep "+org))
			}
			return nil
		})
	}
	_ = g.Wait()
	return rep, errors.Join(errs...)
}

// SweepOrg destroys the organization's empty cases older than MinAge, a batch at a time
func (s *Svc) SweepOrg(ctx context.Context, orgID string) (Report, error) {
	ctx = metrics.WithSource(logger.WithRequest(ctx, "", orgID), Source)
	log := logger.C(ctx)
	cutoff := s.now().Add(-s.cfg.MinAge)
	rep := Report{Orgs: 1}

	for {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		batch, err := s.cases.EmptyBefore(ctx, orgID, cutoff, s.cfg.Batch)
		if err != nil {
			s.metrics.SweepFailed()
			return rep, err
		}
		rep.Found += len(batch)
		if len(batch) == 0 || s.cfg.DryRun {
			if s.cfg.DryRun && len(batch) > 0 {
				log.Info().Int("found", len(batch)).Msg("dry run, leaving empty cases")
			}
			return rep, nil
		}

		n, err := s.cases.DestroyEmptyCases(ctx, batch, orgID)
		rep.Destroyed += n
		if err != nil {
			rep.Failed += len(batch) - n
			s.metrics.SweepFailed()
			log.Warn().Err(err).Int("destroyed", n).Int("batch", len(batch)).Msg("sweep batch incomplete")
			// leftovers wait for the next pass
			return rep, err
		}
		if len(batch) < s.cfg.Batch {
			return rep, nil
		}
	}
}
