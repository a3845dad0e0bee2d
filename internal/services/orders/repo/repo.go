// Package repo stores orders and customers in the document store
package repo

import (
	"context"

	"caseline/internal/modkit/repokit"
	"caseline/internal/platform/docstore"
	"caseline/internal/services/orders/domain"
)

// Collection names
const (
	Orders    = "orders"
	Customers = "customers"
)

// Repo defines the repository contract for orders and customers
type Repo interface {
	Create(ctx context.Context, orgID string, o domain.Order) (domain.Order, error)
	// CreateWithCustomer writes a new customer and an order for it in one batch
	CreateWithCustomer(ctx context.Context, orgID string, o domain.Order, c domain.Customer) (domain.Order, error)
	Get(ctx context.Context, orgID, id string) (domain.Order, error)
	List(ctx context.Context, orgID string, f domain.Filter, limit int) ([]domain.Order, int64, error)
	SetStatus(ctx context.Context, orgID, id string, s domain.Status) error

	CreateCustomer(ctx context.Context, orgID string, c domain.Customer) (domain.Customer, error)
	GetCustomer(ctx context.Context, orgID, id string) (domain.Customer, error)
	ListCustomers(ctx context.Context, orgID string, limit int) ([]domain.Customer, int64, error)
}

type (
	// Docs implements Repo over a docstore.Store
	Docs struct{}

	queries struct {
		db        docstore.Store
		orders    repokit.Collection[domain.Order]
		customers repokit.Collection[domain.Customer]
	}
)

// NewDocs creates a document store repository binder
func NewDocs() repokit.Binder[Repo] { return Docs{} }

// Bind binds a document store to the Repo implementation
func (Docs) Bind(db docstore.Store) Repo {
	return &queries{
		db:        db,
		orders:    repokit.NewCollection[domain.Order](db, Orders),
		customers: repokit.NewCollection[domain.Customer](db, Customers),
	}
}

func (q *queries) Create(ctx context.Context, orgID string, o domain.Order) (domain.Order, error) {
	return q.orders.Create(ctx, orgID, o)
}

func (q *queries) CreateWithCustomer(ctx context.Context, orgID string, o domain.Order, c domain.Customer) (domain.Order, error) {
	cw, err := q.customers.Put(orgID, c.ID, c)
	if err != nil {
		return domain.Order{}, err
	}
	ow, err := q.orders.Put(orgID, o.ID, o)
	if err != nil {
		return domain.Order{}, err
	}
	refs, err := q.db.Batch(ctx, orgID, []docstore.Write{cw, ow})
	if err != nil {
		return domain.Order{}, err
	}
	return q.orders.Get(ctx, orgID, refs[1].ID)
}

func (q *queries) Get(ctx context.Context, orgID, id string) (domain.Order, error) {
	return q.orders.Get(ctx, orgID, id)
}

func (q *queries) List(ctx context.Context, orgID string, f domain.Filter, limit int) ([]domain.Order, int64, error) {
	base := q.orders.Query(orgID)
	if f.Status != "" {
		base = base.Where("status", docstore.Eq, string(f.Status))
	}
	if f.CustomerID != "" {
		base = base.Where("customerId", docstore.Eq, f.CustomerID)
	}
	total, err := q.orders.Count(ctx, base)
	if err != nil {
		return nil, 0, err
	}
	out, err := q.orders.Find(ctx, base.Order(docstore.FieldCreatedAt, true).Take(limit))
	return out, total, err
}

func (q *queries) SetStatus(ctx context.Context, orgID, id string, s domain.Status) error {
	return q.orders.Update(ctx, orgID, id, docstore.Fields{"status": string(s)})
}

func (q *queries) CreateCustomer(ctx context.Context, orgID string, c domain.Customer) (domain.Customer, error) {
	return q.customers.Create(ctx, orgID, c)
}

func (q *queries) GetCustomer(ctx context.Context, orgID, id string) (domain.Customer, error) {
	return q.customers.Get(ctx, orgID, id)
}

func (q *queries) ListCustomers(ctx context.Context, orgID string, limit int) ([]domain.Customer, int64, error) {
	base := q.customers.Query(orgID)
	total, err := q.customers.Count(ctx, base)
	if err != nil {
		return nil, 0, err
	}
	out, err := q.customers.Find(ctx, base.Order("name", false).Take(limit))
	return out, total, err
}
