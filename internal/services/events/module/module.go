// Package module wires case events. With clickhouse configured events are buffered and
// appended to case_events; otherwise the sink discards them and reads answer 503
package module

import (
	"context"

	modkit "caseline/internal/modkit"
	"caseline/internal/modkit/httpkit"
	perr "caseline/internal/platform/errors"
	"caseline/internal/platform/logger"
	"caseline/internal/services/events/domain"
	eventshttp "caseline/internal/services/events/http"
	eventsrepo "caseline/internal/services/events/repo"
	eventssvc "caseline/internal/services/events/service"
)

// Name is the registry name of the events module
const Name = "events"

// Ports is the port set events exposes to other modules
type Ports struct {
	Sink   domain.Sink
	Reader domain.Reader
}

// Module implements the modkit.Module interface
type Module struct {
	b     modkit.Built
	rec   *eventssvc.Recorder
	ports Ports
}

// New constructs the events module. Migration failures disable the clickhouse sink
// instead of failing startup
func New(ctx context.Context, deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName(Name), modkit.WithPrefix("/events")}, opts...)...)
	m := &Module{b: b, ports: Ports{Sink: domain.Nop{}, Reader: unavailable{}}}
	if deps.Store == nil || deps.Store.CH == nil {
		return m
	}

	r := eventsrepo.NewCH(deps.Store.CH)
	if err := r.Migrate(ctx); err != nil {
		logger.Named(Name).Error().Err(err).Msg("case_events migration failed, events disabled")
		return m
	}
	m.rec = eventssvc.NewRecorder(r, eventssvc.ConfigFrom(deps.Cfg), deps.Clock)
	m.ports = Ports{Sink: m.rec, Reader: m.rec}
	return m
}

// Run flushes events until ctx ends; without clickhouse it just waits
func (m *Module) Run(ctx context.Context) error {
	if m.rec == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	return m.rec.Run(ctx)
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { eventshttp.Register(rr, m.ports.Reader) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Sink returns the event sink
func (m *Module) Sink() domain.Sink { return m.ports.Sink }

type unavailable struct{}

func (unavailable) Recent(context.Context, string, string, int) ([]domain.Event, error) {
	return nil, perr.Unavailablef("case events are not enabled")
}
