// Package module wires unit recording into the API using modkit
package module

import (
	modkit "caseline/internal/modkit"
	"caseline/internal/modkit/httpkit"
	casesdom "caseline/internal/services/cases/domain"
	eventsdom "caseline/internal/services/events/domain"
	ordersdom "caseline/internal/services/orders/domain"
	productsdom "caseline/internal/services/products/domain"
	unitshttp "caseline/internal/services/units/http"
	unitsrepo "caseline/internal/services/units/repo"
	unitssvc "caseline/internal/services/units/service"
)

// Name is the registry name of the units module
const Name = "units"

// Needs is the port set units consumes. Events is optional
type Needs struct {
	Products productsdom.Reader
	Orders   ordersdom.Reader
	Cases    casesdom.Opener
	Events   eventsdom.Sink
}

// Module implements the modkit.Module interface
type Module struct {
	b   modkit.Built
	svc unitssvc.Service
}

// New constructs the units module. It panics without products, orders and cases ports
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName(Name), modkit.WithPrefix("/units")}, opts...)...)
	needs, ok := modkit.PortsAs[Needs](b)
	if !ok || needs.Products == nil || needs.Orders == nil || needs.Cases == nil {
		panic("units module requires products, orders and cases ports")
	}
	svc := unitssvc.New(deps.Docs, unitsrepo.NewDocs(), needs.Products, needs.Orders, needs.Cases,
		unitssvc.WithEvents(needs.Events),
		unitssvc.WithMetrics(deps.Metrics),
	)
	return &Module{b: b, svc: svc}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { unitshttp.Register(rr, m.svc) })
}

// Ports returns nil; no module consumes units
func (m *Module) Ports() any { return nil }

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }
