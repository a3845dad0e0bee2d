package domain

import "context"

// Reader is what other modules need from orders
type Reader interface {
	Get(ctx context.Context, orgID, id string) (Order, error)
}

// ServicePort defines the service contract for orders and customers
type ServicePort interface {
	Reader
	Create(ctx context.Context, orgID string, in OrderInput) (Order, error)
	List(ctx context.Context, orgID string, f Filter, limit int) ([]Order, int64, error)
	SetStatus(ctx context.Context, orgID, id string, s Status) (Order, error)

	CreateCustomer(ctx context.Context, orgID string, c Customer) (Customer, error)
	ListCustomers(ctx context.Context, orgID string, limit int) ([]Customer, int64, error)
}
