package docstore

import (
	"context"
	"strings"
	"time"

	"caseline/internal/platform/config"
	perr "caseline/internal/platform/errors"
	"caseline/internal/platform/store"
)

// Config selects and tunes the backend
type Config struct {
	// Backend is "memory" or "sql"
	Backend string
	Poll    time.Duration
}

// FromConfig reads DOCSTORE and DOCSTORE_POLL from a module prefix
func FromConfig(c config.Conf) Config {
	return Config{
		Backend: strings.ToLower(c.MayEnum("DOCSTORE", "sql", "memory", "sql")),
		Poll:    c.MayDuration("DOCSTORE_POLL", time.Second),
	}
}

// Open builds the configured backend. The sql backend uses the store's primary SQL
// seam, postgres when enabled and sqlite otherwise, and migrates the table
func Open(ctx context.Context, cfg Config, st *store.Store, opts ...Option) (Store, error) {
	opts = append([]Option{WithPollInterval(cfg.Poll)}, opts...)
	if cfg.Backend == "memory" {
		return NewMemory(opts...), nil
	}
	db := st.SQL()
	if db == nil {
		return nil, perr.Unavailablef("docstore: sql backend selected but no SQL store is configured")
	}
	d := SQLite
	if st.PG != nil {
		d = Postgres
	}
	s := NewSQL(db, d, opts...)
	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}
	s.opt.log.Info().Str("dialect", string(d)).Dur("poll", s.opt.poll).Msg("document store ready")
	return s, nil
}
