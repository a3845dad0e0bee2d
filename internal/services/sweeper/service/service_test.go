package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"caseline/internal/platform/config"
	perr "caseline/internal/platform/errors"
	"caseline/internal/platform/metrics"
	kit "caseline/internal/platform/testkit"
	casesdom "caseline/internal/services/cases/domain"
)

var t0 = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

// fakeCases holds empty cases per org; failOrg fails every delete of that org
type fakeCases struct {
	mu      sync.Mutex
	byOrg   map[string][]casesdom.Case
	cutoffs []time.Time
	sources []string
	failOrg string
}

func (f *fakeCases) EmptyBefore(_ context.Context, orgID string, t time.Time, limit int) ([]casesdom.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, t)
	cs := f.byOrg[orgID]
	if limit > 0 && len(cs) > limit {
		cs = cs[:limit]
	}
	return append([]casesdom.Case(nil), cs...), nil
}

func (f *fakeCases) DestroyEmptyCases(ctx context.Context, cases []casesdom.Case, orgID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = append(f.sources, metrics.Source(ctx))
	if orgID == f.failOrg {
		return 0, perr.Unavailablef("store down")
	}
	gone := map[string]bool{}
	for _, c := range cases {
		gone[c.ID] = true
	}
	var left []casesdom.Case
	for _, c := range f.byOrg[orgID] {
		if !gone[c.ID] {
			left = append(left, c)
		}
	}
	f.byOrg[orgID] = left
	return len(cases), nil
}

func empties(n int) []casesdom.Case {
	out := make([]casesdom.Case, n)
	for i := range out {
		out[i] = casesdom.Case{ID: string(rune('a' + i))}
	}
	return out
}

func TestSweepOrgBatches(t *testing.T) {
	f := &fakeCases{byOrg: map[string][]casesdom.Case{"org1": empties(5)}}
	s := New(f, Config{MinAge: time.Hour, Batch: 2}, kit.Clock(t0), metrics.New())

	rep, err := s.SweepOrg(context.Background(), "org1")
	if err != nil {
		t.Fatal(err)
	}
	if rep.Destroyed != 5 || rep.Found != 5 || len(f.byOrg["org1"]) != 0 {
		t.Fatalf("report = %+v left = %d", rep, len(f.byOrg["org1"]))
	}
	if !f.cutoffs[0].Equal(t0.Add(-time.Hour)) {
		t.Fatalf("cutoff = %v", f.cutoffs[0])
	}
	for _, src := range f.sources {
		if src != Source {
			t.Fatalf("source = %q", src)
		}
	}
}

func TestSweepDryRun(t *testing.T) {
	f := &fakeCases{byOrg: map[string][]casesdom.Case{"org1": empties(3)}}
	s := New(f, Config{Batch: 10, DryRun: true}, kit.Clock(t0), nil)

	rep, err := s.SweepOrg(context.Background(), "org1")
	if err != nil || rep.Found != 3 || rep.Destroyed != 0 || len(f.sources) != 0 {
		t.Fatalf("report = %+v err = %v", rep, err)
	}
}

func TestSweepContinuesPastFailingOrg(t *testing.T) {
	f := &fakeCases{
		byOrg:   map[string][]casesdom.Case{"a": empties(2), "b": empties(3), "c": empties(1)},
		failOrg: "b",
	}
	s := New(f, Config{Batch: 10, Concurrency: 2}, kit.Clock(t0), metrics.New())

	rep, err := s.Sweep(context.Background(), []string{"a", "b", "c"})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if rep.Orgs != 3 || rep.Destroyed != 3 || rep.Failed != 3 {
		t.Fatalf("report = %+v", rep)
	}
	if len(f.byOrg["a"]) != 0 || len(f.byOrg["c"]) != 0 || len(f.byOrg["b"]) != 3 {
		t.Fatalf("left = %v", f.byOrg)
	}
}

func TestRunSweepsUntilCancelled(t *testing.T) {
	f := &fakeCases{byOrg: map[string][]casesdom.Case{"org1": empties(2)}}
	s := New(f, Config{Interval: 10 * time.Millisecond, Batch: 10, Orgs: []string{"org1"}}, kit.Clock(t0), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	kit.Eventually(t, time.Second, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return len(f.cutoffs) >= 2
	})
	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("run = %v", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.byOrg["org1"]) != 0 {
		t.Fatal("first pass did not sweep")
	}
}

func TestRunIdleWithoutOrgs(t *testing.T) {
	f := &fakeCases{byOrg: map[string][]casesdom.Case{}}
	s := New(f, Config{}, nil, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := s.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("run = %v", err)
	}
	if len(f.cutoffs) != 0 {
		t.Fatal("idle sweeper queried cases")
	}
}

func TestConfigFrom(t *testing.T) {
	t.Setenv("CORE_SWEEPER_INTERVAL", "30s")
	t.Setenv("CORE_SWEEPER_ORGS", "org1, org2")
	t.Setenv("CORE_SWEEPER_BATCH", "50")
	c := ConfigFrom(config.New())
	if c.Interval != 30*time.Second || c.Batch != 50 || c.MinAge != time.Hour || len(c.Orgs) != 2 || c.Orgs[1] != "org2" {
		t.Fatalf("config = %+v", c)
	}
}
