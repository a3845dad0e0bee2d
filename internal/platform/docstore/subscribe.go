package docstore

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// stream runs a live query: it emits the first result, then waits on arm's channel
// and re-runs, emitting only when the result set changed. arm is called before each
// run so a change that races the query is never missed
func stream(ctx context.Context, run func(context.Context) ([]Doc, error), arm func() <-chan struct{}) <-chan Snapshot {
	out := make(chan Snapshot, 1)
	go func() {
		defer close(out)
		var last string
		first := true
		for {
			wake := arm()
			docs, err := run(ctx)
			if ctx.Err() != nil {
				return
			}
			if fp := fingerprint(docs, err); first || fp != last {
				select {
				case out <- Snapshot{Docs: docs, Err: err}:
				case <-ctx.Done():
					return
				}
				first, last = false, fp
			}
			select {
			case <-wake:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// ticker arms a channel that closes after d
func ticker(d time.Duration) func() <-chan struct{} {
	return func() <-chan struct{} {
		c := make(chan struct{})
		time.AfterFunc(d, func() { close(c) })
		return c
	}
}

// fingerprint identifies a result set by ids and update stamps
func fingerprint(docs []Doc, err error) string {
	if err != nil {
		return "err:" + err.Error()
	}
	var b strings.Builder
	for _, d := range docs {
		b.WriteString(d.ID)
		b.WriteByte('@')
		b.WriteString(strconv.FormatInt(d.UpdatedAt.UnixNano(), 10))
		b.WriteByte(';')
	}
	return b.String()
}
