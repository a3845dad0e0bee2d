// Package module wires products into the API using modkit
package module

import (
	modkit "caseline/internal/modkit"
	"caseline/internal/modkit/httpkit"
	productshttp "caseline/internal/services/products/http"
	productsrepo "caseline/internal/services/products/repo"
	productssvc "caseline/internal/services/products/service"
)

// Name is the registry name of the products module
const Name = "products"

// Module implements the modkit.Module interface
type Module struct {
	b     modkit.Built
	svc   productssvc.Service
	ports Ports
}

// New constructs a products module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName(Name), modkit.WithPrefix("/products")}, opts...)...)

	svc := productssvc.New(deps.Docs, productsrepo.NewDocs())
	return &Module{b: b, svc: svc, ports: Ports{Products: adaptProductsPort{svc: svc}}}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { productshttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }
