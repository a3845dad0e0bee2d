package pg

import (
	"context"
	"errors"
	"testing"

	"caseline/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpenParseError(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpenPoolError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})
	if _, err := Open(context.Background(), Config{URL: "postgres://u:p@h:5432/db"}, nil, nil); err == nil {
		t.Fatalf("expected pool error")
	}
}

func TestOpenAppliesConfig(t *testing.T) {
	testkit.Serial(t)

	var seen *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = c
		return &pgxpool.Pool{}, nil
	})

	p, err := Open(context.Background(), Config{
		URL:      "postgres://u:p@h:5432/db?sslmode=disable",
		MaxConns: 7,
		SlowMs:   120,
		AppName:  "caseline-test",
	}, nil, func(c *pgxpool.Config) { c.MinConns = 1 })
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if seen.MaxConns != 7 || seen.MinConns != 1 {
		t.Fatalf("pool config = max %d min %d", seen.MaxConns, seen.MinConns)
	}
	if got := seen.ConnConfig.RuntimeParams["application_name"]; got != "caseline-test" {
		t.Fatalf("application_name = %q", got)
	}
	if p.SlowMs != 120 {
		t.Fatalf("SlowMs = %d", p.SlowMs)
	}
}

func TestCloseNilSafe(t *testing.T) {
	var p *PG
	p.Close()
	(&PG{}).Close()
}
