// Package repo stores products in the document store
package repo

import (
	"context"

	"caseline/internal/modkit/repokit"
	"caseline/internal/platform/docstore"
	"caseline/internal/services/products/domain"
)

// Collection is the document collection products live in
const Collection = "products"

// Repo defines the repository contract for products
type Repo interface {
	Create(ctx context.Context, orgID string, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, orgID, id string) (domain.Product, error)
	List(ctx context.Context, orgID string, limit int) ([]domain.Product, int64, error)
}

type (
	// Docs implements Repo over a docstore.Store
	Docs struct{}

	queries struct{ c repokit.Collection[domain.Product] }
)

// NewDocs creates a document store repository binder
func NewDocs() repokit.Binder[Repo] { return Docs{} }

// Bind binds a document store to the Repo implementation
func (Docs) Bind(db docstore.Store) Repo {
	return &queries{c: repokit.NewCollection[domain.Product](db, Collection)}
}

func (q *queries) Create(ctx context.Context, orgID string, p domain.Product) (domain.Product, error) {
	return q.c.Create(ctx, orgID, p)
}

func (q *queries) Get(ctx context.Context, orgID, id string) (domain.Product, error) {
	return q.c.Get(ctx, orgID, id)
}

func (q *queries) List(ctx context.Context, orgID string, limit int) ([]domain.Product, int64, error) {
	base := q.c.Query(orgID)
	total, err := q.c.Count(ctx, base)
	if err != nil {
		return nil, 0, err
	}
	out, err := q.c.Find(ctx, base.Order("name", false).Take(limit))
	return out, total, err
}
