package modkit

import (
	"context"
	"errors"
	"time"

	"caseline/internal/platform/config"
	"caseline/internal/platform/docstore"
	"caseline/internal/platform/logger"
	"caseline/internal/platform/metrics"
	"caseline/internal/platform/store"
)

// Open brings up the store, the document store and metrics for a process. root carries
// the SERVICE_* backends; scope is the process prefix (CORE_API_, CORE_SWEEPER_) and
// holds DOCSTORE, DOCSTORE_POLL and TZ. The returned closer releases the store
func Open(ctx context.Context, root, scope config.Conf, role string) (Deps, func(context.Context) error, error) {
	l := logger.Get()
	st, err := store.Open(ctx, store.FromConfig(root, role), store.WithLogger(*l))
	if err != nil {
		return Deps{}, nil, err
	}
	docs, err := docstore.Open(ctx, docstore.FromConfig(scope), st)
	if err != nil {
		return Deps{}, nil, errors.Join(err, st.Close(ctx))
	}

	deps := Deps{
		Cfg:      root,
		Docs:     docs,
		Metrics:  metrics.New(),
		Location: scope.MayLocation("TZ", time.UTC),
	}
	if st.SQL() != nil || st.CH != nil {
		deps.Store = st
	}
	l.Info().
		Str("role", role).
		Bool("sql", st.SQL() != nil).
		Bool("clickhouse", st.CH != nil).
		Str("zone", deps.Location.String()).
		Msg("deps ready")
	return deps, st.Close, nil
}
