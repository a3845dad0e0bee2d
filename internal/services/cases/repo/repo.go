// Package repo stores cases in the document store
package repo

import (
	"context"
	"time"

	"caseline/internal/modkit/repokit"
	"caseline/internal/platform/docstore"
	"caseline/internal/services/cases/domain"
)

// Collection is the document collection cases live in
const Collection = "cases"

// Repo defines the repository contract for cases
type Repo interface {
	Create(ctx context.Context, orgID string, c domain.Case) (domain.Case, error)
	Get(ctx context.Context, orgID, id string) (domain.Case, error)
	Delete(ctx context.Context, orgID, id string) error
	// Last returns the most recently created case of the pair
	Last(ctx context.Context, orgID, orderID, productID string) (domain.Case, bool, error)
	// ForPair lists the pair's cases, newest first
	ForPair(ctx context.Context, orgID, orderID, productID string, limit int) ([]domain.Case, error)
	EmptyBefore(ctx context.Context, orgID string, t time.Time, limit int) ([]domain.Case, error)
	// AddUnits adds n to the case count; n may be negative
	AddUnits(ctx context.Context, orgID, id string, n int) error
	Watch(ctx context.Context, orgID, orderID, productID string) (<-chan repokit.Snapshot[domain.Case], error)
}

type (
	// Docs implements Repo over a docstore.Store
	Docs struct{}

	queries struct{ c repokit.Collection[domain.Case] }
)

// NewDocs creates a document store repository binder
func NewDocs() repokit.Binder[Repo] { return Docs{} }

// Bind binds a document store to the Repo implementation
func (Docs) Bind(db docstore.Store) Repo {
	return &queries{c: repokit.NewCollection[domain.Case](db, Collection)}
}

func (q *queries) pair(orgID, orderID, productID string) docstore.Query {
	return q.c.Query(orgID).
		Where("orderId", docstore.Eq, orderID).
		Where("productId", docstore.Eq, productID)
}

func (q *queries) Create(ctx context.Context, orgID string, c domain.Case) (domain.Case, error) {
	return q.c.Create(ctx, orgID, c)
}

func (q *queries) Get(ctx context.Context, orgID, id string) (domain.Case, error) {
	return q.c.Get(ctx, orgID, id)
}

func (q *queries) Delete(ctx context.Context, orgID, id string) error {
	return q.c.Delete(ctx, orgID, id)
}

func (q *queries) Last(ctx context.Context, orgID, orderID, productID string) (domain.Case, bool, error) {
	return q.c.First(ctx, q.pair(orgID, orderID, productID).Order(docstore.FieldCreatedAt, true))
}

func (q *queries) ForPair(ctx context.Context, orgID, orderID, productID string, limit int) ([]domain.Case, error) {
	return q.c.Find(ctx, q.pair(orgID, orderID, productID).Order(docstore.FieldCreatedAt, true).Take(limit))
}

func (q *queries) EmptyBefore(ctx context.Context, orgID string, t time.Time, limit int) ([]domain.Case, error) {
	return q.c.Find(ctx, q.c.Query(orgID).
		Where("count", docstore.Eq, 0).
		Where(docstore.FieldCreatedAt, docstore.Lt, t).
		Order(docstore.FieldCreatedAt, false).
		Take(limit))
}

func (q *queries) AddUnits(ctx context.Context, orgID, id string, n int) error {
	return q.c.Update(ctx, orgID, id, docstore.Fields{"count": docstore.Inc(float64(n))})
}

func (q *queries) Watch(ctx context.Context, orgID, orderID, productID string) (<-chan repokit.Snapshot[domain.Case], error) {
	return q.c.Watch(ctx, q.pair(orgID, orderID, productID).Order(docstore.FieldCreatedAt, true))
}
