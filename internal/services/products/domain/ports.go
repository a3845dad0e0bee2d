package domain

import "context"

// Reader is what other modules need from products
type Reader interface {
	Get(ctx context.Context, orgID, id string) (Product, error)
}

// ServicePort defines the service contract for products
type ServicePort interface {
	Reader
	Create(ctx context.Context, orgID string, in ProductInput) (Product, error)
	List(ctx context.Context, orgID string, limit int) ([]Product, int64, error)
}
