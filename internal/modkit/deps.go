package modkit

import (
	"time"

	"caseline/internal/platform/config"
	"caseline/internal/platform/docstore"
	"caseline/internal/platform/metrics"
	"caseline/internal/platform/store"
)

// Deps holds the shared dependencies handed to modules. Store may be nil when the
// document store runs in memory; Metrics may be nil
type Deps struct {
	Cfg     config.Conf
	Store   *store.Store
	Docs    docstore.Store
	Metrics *metrics.Metrics
	Clock   func() time.Time
	// Location is the zone date tokens of identifier patterns are rendered in
	Location *time.Location
}

// Now reads the clock in Location, defaulting to time.Now and UTC
func (d Deps) Now() time.Time {
	now := time.Now
	if d.Clock != nil {
		now = d.Clock
	}
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}
