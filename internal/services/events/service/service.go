// Package service buffers case events and flushes them to clickhouse in batches
package service

import (
	"context"
	"sync/atomic"
	"time"

	"caseline/internal/platform/config"
	perr "caseline/internal/platform/errors"
	"caseline/internal/platform/logger"
	"caseline/internal/services/events/domain"
	"caseline/internal/services/events/repo"
)

// Config tunes the recorder
type Config struct {
	// Buffer is how many events may wait for a flush before Emit drops
	Buffer int
	// Batch flushes early once this many events are waiting
	Batch      int
	FlushEvery time.Duration
}

// ConfigFrom reads EVENTS_BUFFER, EVENTS_BATCH and EVENTS_FLUSH
func ConfigFrom(c config.Conf) Config {
	return Config{
		Buffer:     c.MayInt("EVENTS_BUFFER", 1024),
		Batch:      c.MayInt("EVENTS_BATCH", 256),
		FlushEvery: c.MayDuration("EVENTS_FLUSH", 2*time.Second),
	}
}

// Recorder is a Sink and Reader over the events repo
type Recorder struct {
	repo repo.Repo
	cfg  Config
	in   chan domain.Event
	log  *logger.Logger
	now  func() time.Time

	dropped atomic.Int64
}

// NewRecorder returns a recorder; call Run to start flushing
func NewRecorder(r repo.Repo, cfg Config, now func() time.Time) *Recorder {
	if cfg.Buffer <= 0 {
		cfg.Buffer = 1024
	}
	if cfg.Batch <= 0 || cfg.Batch > cfg.Buffer {
		cfg.Batch = cfg.Buffer
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = 2 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &Recorder{
		repo: r,
		cfg:  cfg,
		in:   make(chan domain.Event, cfg.Buffer),
		log:  logger.Named("events"),
		now:  now,
	}
}

// Emit queues e; a full buffer drops it
func (r *Recorder) Emit(ctx context.Context, e domain.Event) {
	if e.At.IsZero() {
		e.At = r.now()
	}
	select {
	case r.in <- e:
	default:
		if r.dropped.Add(1)%100 == 1 {
			logger.C(ctx).Warn().Int64("dropped", r.dropped.Load()).Msg("event buffer full, dropping")
		}
	}
}

// Dropped counts events lost to a full buffer
func (r *Recorder) Dropped() int64 { return r.dropped.Load() }

// Run flushes queued events until ctx ends, then drains what is left
func (r *Recorder) Run(ctx context.Context) error {
	t := time.NewTicker(r.cfg.FlushEvery)
	defer t.Stop()

	buf := make([]domain.Event, 0, r.cfg.Batch)
	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}
		if err := r.repo.Append(ctx, buf); err != nil {
			r.log.Error().Err(err).Int("events", len(buf)).Msg("event flush failed")
		}
		buf = buf[:0]
	}

	for {
		select {
		case <-ctx.Done():
		drain:
			for {
				select {
				case e := <-r.in:
					buf = append(buf, e)
				default:
					break drain
				}
			}
			fctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			flush(fctx)
			cancel()
			return ctx.Err()
		case e := <-r.in:
			buf = append(buf, e)
			if len(buf) >= r.cfg.Batch {
				flush(ctx)
			}
		case <-t.C:
			flush(ctx)
		}
	}
}

// Recent reads the newest events of an order
func (r *Recorder) Recent(ctx context.Context, orgID, orderID string, limit int) ([]domain.Event, error) {
	if orderID == "" {
		return nil, perr.WithField(perr.Validationf("orderId is required"), "orderId")
	}
	evs, err := r.repo.Recent(ctx, orgID, orderID, limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "reading case events")
	}
	return evs, nil
}
