package module

import (
	"context"

	productsdom "caseline/internal/services/products/domain"
	productssvc "caseline/internal/services/products/service"
)

// Ports is the port set products exposes to other modules
type Ports struct {
	Products productsdom.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Service returns the product service port
func (m *Module) Service() productsdom.ServicePort { return m.ports.Products }

// adaptProductsPort adapts the products service to the domain port interface
type adaptProductsPort struct{ svc productssvc.Service }

func (a adaptProductsPort) Get(ctx context.Context, orgID, id string) (productsdom.Product, error) {
	return a.svc.Get(ctx, orgID, id)
}

func (a adaptProductsPort) Create(ctx context.Context, orgID string, in productsdom.ProductInput) (productsdom.Product, error) {
	return a.svc.Create(ctx, orgID, in)
}

func (a adaptProductsPort) List(ctx context.Context, orgID string, limit int) ([]productsdom.Product, int64, error) {
	return a.svc.List(ctx, orgID, limit)
}
