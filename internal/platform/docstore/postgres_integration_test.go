//go:build integration_pg

package docstore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"caseline/internal/platform/store"
	kit "caseline/internal/platform/testkit"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var pgStore *store.Store

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	c, dsn, err := startPostgres(ctx)
	if err != nil {
		cancel()
		fmt.Fprintln(os.Stderr, "start postgres:", err)
		os.Exit(1)
	}
	pgStore, err = store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 4}})
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		fmt.Fprintln(os.Stderr, "open store:", err)
		os.Exit(1)
	}
	extraBackends["postgres"] = openPostgres

	code := m.Run()

	_ = pgStore.Close(context.Background())
	_ = c.Terminate(context.Background())
	cancel()
	os.Exit(code)
}

func startPostgres(ctx context.Context) (tc.Container, string, error) {
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "caseline",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, "", err
	}
	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		return nil, "", err
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		return nil, "", err
	}
	return c, fmt.Sprintf("postgres://postgres:postgres@%s:%s/caseline?sslmode=disable", host, port.Port()), nil
}

// openPostgres migrates and empties the shared table for each subtest
func openPostgres(t *testing.T) Store {
	t.Helper()
	ctx := context.Background()
	s := NewSQL(pgStore.PG, Postgres, WithClock(kit.Clock(t0)), WithPollInterval(10*time.Millisecond))
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := pgStore.PG.Exec(ctx, "TRUNCATE documents"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return s
}
