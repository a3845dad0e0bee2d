// Package module wires cases into the API using modkit
package module

import (
	"caseline/internal/core/idtemplate"
	modkit "caseline/internal/modkit"
	"caseline/internal/modkit/httpkit"
	caseshttp "caseline/internal/services/cases/http"
	casesrepo "caseline/internal/services/cases/repo"
	casessvc "caseline/internal/services/cases/service"
	eventsdom "caseline/internal/services/events/domain"
	ordersdom "caseline/internal/services/orders/domain"
	productsdom "caseline/internal/services/products/domain"
)

// Name is the registry name of the cases module
const Name = "cases"

// Needs is the port set cases consumes. Events is optional
type Needs struct {
	Products productsdom.Reader
	Orders   ordersdom.Reader
	Events   eventsdom.Sink
}

// Module implements the modkit.Module interface
type Module struct {
	b     modkit.Built
	svc   *casessvc.Svc
	ports Ports
}

// New constructs the cases module. It panics without products and orders readers
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName(Name), modkit.WithPrefix("/cases")}, opts...)...)
	needs, ok := modkit.PortsAs[Needs](b)
	if !ok || needs.Products == nil || needs.Orders == nil {
		panic("cases module requires products and orders ports")
	}

	cfg := deps.Cfg.Prefix("CASES_")
	svc := casessvc.New(deps.Docs, casesrepo.NewDocs(), idtemplate.NewGenerator(deps.Now),
		needs.Products, needs.Orders,
		casessvc.WithEvents(needs.Events),
		casessvc.WithMetrics(deps.Metrics),
		casessvc.WithParallelism(cfg.MayInt("DESTROY_PARALLEL", 8)),
	)
	return &Module{b: b, svc: svc, ports: Ports{Cases: svc}}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { caseshttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }
