// Package module wires orders and customers into the API using modkit
package module

import (
	modkit "caseline/internal/modkit"
	"caseline/internal/modkit/httpkit"
	ordershttp "caseline/internal/services/orders/http"
	ordersrepo "caseline/internal/services/orders/repo"
	orderssvc "caseline/internal/services/orders/service"
	productsdom "caseline/internal/services/products/domain"
)

// Name is the registry name of the orders module
const Name = "orders"

// Needs is the port set orders consumes, injected with modkit.WithPorts
type Needs struct {
	Products productsdom.Reader
}

// Module implements the modkit.Module interface
type Module struct {
	b     modkit.Built
	svc   orderssvc.Service
	ports Ports
}

// New constructs the orders module. It panics without a products reader
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName(Name), modkit.WithPrefix("/orders")}, opts...)...)
	needs, ok := modkit.PortsAs[Needs](b)
	if !ok || needs.Products == nil {
		panic("orders module requires products ports")
	}

	svc := orderssvc.New(deps.Docs, ordersrepo.NewDocs(), needs.Products, deps.Clock)
	return &Module{b: b, svc: svc, ports: Ports{Orders: svc}}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { ordershttp.Register(rr, m.svc) })
	httpkit.MountUnder(r, "/customers", m.b.Mw, func(rr httpkit.Router) { ordershttp.RegisterCustomers(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }
