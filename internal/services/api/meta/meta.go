// Package meta serves build and health endpoints
package meta

import (
	"context"
	stdhttp "net/http"
	"time"

	"caseline/internal/core/version"
	"caseline/internal/modkit/httpkit"
	perr "caseline/internal/platform/errors"
)

// Guard checks the backing stores; store.Store satisfies it
type Guard interface {
	Guard(ctx context.Context) error
}

// Deps are the handler dependencies. Guard may be nil
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Guard       Guard
	Now         func() time.Time
}

// Health is the liveness payload
type Health struct {
	OK      bool   `json:"ok" example:"true"`
	Service string `json:"service" example:"caseline-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime" example:"300"`
}

// Module mounts the meta routes at the API root
type Module struct {
	deps Deps
}

// New constructs the meta module
func New(d Deps) *Module {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.StartedAt.IsZero() {
		d.StartedAt = d.Now()
	}
	return &Module{deps: d}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.Get(r, "/version", m.version)
	httpkit.Get(r, "/healthz", m.health)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return "meta" }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }

// @Summary Build version
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /version [get]
func (m *Module) version(_ *stdhttp.Request) (any, error) {
	return version.Info(m.deps.ServiceName), nil
}

// @Summary Liveness and store readiness
// @Tags Meta
// @Produce json
// @Success 200 {object} Health "ok"
// @Failure 503 "store unavailable"
// @Router /healthz [get]
func (m *Module) health(r *stdhttp.Request) (any, error) {
	if m.deps.Guard != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := m.deps.Guard.Guard(ctx); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "store unavailable")
		}
	}
	return Health{
		OK:      true,
		Service: m.deps.ServiceName,
		Started: m.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(m.deps.Now().Sub(m.deps.StartedAt) / time.Second),
	}, nil
}
