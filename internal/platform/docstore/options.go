package docstore

import (
	"time"

	"caseline/internal/platform/logger"
)

type options struct {
	now  func() time.Time
	poll time.Duration
	log  logger.Logger
}

// Option configures either backend
type Option func(*options)

// WithClock stamps createdAt and updatedAt from now
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithPollInterval sets how often SQL subscriptions re-run their query
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.poll = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

func build(opts []Option) options {
	o := options{now: time.Now, poll: time.Second, log: *logger.Named("docstore")}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
