// Package module wires the empty case sweeper. It mounts no routes; cmd/caseline-sweeper
// and the CLI drive it
package module

import (
	modkit "caseline/internal/modkit"
	"caseline/internal/modkit/httpkit"
	casesdom "caseline/internal/services/cases/domain"
	"caseline/internal/services/sweeper/service"
)

// Name is the registry name of the sweeper module
const Name = "sweeper"

// Needs is the port set the sweeper consumes
type Needs struct {
	Cases casesdom.Sweeper
}

// Ports is the port set the sweeper exposes
type Ports struct {
	Sweeper *service.Svc
}

// Module implements the modkit.Module interface
type Module struct {
	b     modkit.Built
	ports Ports
}

// New constructs the sweeper from CORE_SWEEPER_ config; override, when non nil, edits
// the loaded config (CLI flags)
func New(deps modkit.Deps, override func(*service.Config), opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName(Name)}, opts...)...)
	needs, ok := modkit.PortsAs[Needs](b)
	if !ok || needs.Cases == nil {
		panic("sweeper module requires cases ports")
	}
	cfg := service.ConfigFrom(deps.Cfg)
	if override != nil {
		override(&cfg)
	}
	svc := service.New(needs.Cases, cfg, deps.Clock, deps.Metrics)
	return &Module{b: b, ports: Ports{Sweeper: svc}}
}

// Service returns the sweeper
func (m *Module) Service() *service.Svc { return m.ports.Sweeper }

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes mounts nothing
func (m *Module) MountRoutes(httpkit.Router) {}
