// Package repo stores unit values in the document store
package repo

import (
	"context"

	"caseline/internal/modkit/repokit"
	"caseline/internal/platform/docstore"
	"caseline/internal/services/units/domain"

	"github.com/shopspring/decimal"
)

// Collection is the document collection unit values live in
const Collection = "unitValues"

// Repo defines the repository contract for unit values
type Repo interface {
	Create(ctx context.Context, orgID string, u domain.UnitValue) (domain.UnitValue, error)
	Get(ctx context.Context, orgID, id string) (domain.UnitValue, error)
	Delete(ctx context.Context, orgID, id string) error
	// List returns matches newest first with the total match count
	List(ctx context.Context, orgID string, f domain.Filter, limit int) ([]domain.UnitValue, int64, error)
	// CountIdentifier counts units of productID whose identifier name equals value. An
	// empty orderID counts across the organization
	CountIdentifier(ctx context.Context, orgID, productID, orderID, name, value string) (int64, error)
	// Recorded sums unit counts of one order line
	Recorded(ctx context.Context, orgID, orderID, productID string) (decimal.Decimal, error)
}

type (
	// Docs implements Repo over a docstore.Store
	Docs struct{}

	queries struct{ c repokit.Collection[domain.UnitValue] }
)

// NewDocs creates a document store repository binder
func NewDocs() repokit.Binder[Repo] { return Docs{} }

// Bind binds a document store to the Repo implementation
func (Docs) Bind(db docstore.Store) Repo {
	return &queries{c: repokit.NewCollection[domain.UnitValue](db, Collection)}
}

func (q *queries) Create(ctx context.Context, orgID string, u domain.UnitValue) (domain.UnitValue, error) {
	return q.c.Create(ctx, orgID, u)
}

func (q *queries) Get(ctx context.Context, orgID, id string) (domain.UnitValue, error) {
	return q.c.Get(ctx, orgID, id)
}

func (q *queries) Delete(ctx context.Context, orgID, id string) error {
	return q.c.Delete(ctx, orgID, id)
}

func (q *queries) List(ctx context.Context, orgID string, f domain.Filter, limit int) ([]domain.UnitValue, int64, error) {
	qq := q.c.Query(orgID)
	if f.OrderID != "" {
		qq = qq.Where("orderId", docstore.Eq, f.OrderID)
	}
	if f.CaseID != "" {
		qq = qq.Where("caseId", docstore.Eq, f.CaseID)
	}
	total, err := q.c.Count(ctx, qq)
	if err != nil {
		return nil, 0, err
	}
	items, err := q.c.Find(ctx, qq.Order(docstore.FieldCreatedAt, true).Take(limit))
	return items, total, err
}

func (q *queries) CountIdentifier(ctx context.Context, orgID, productID, orderID, name, value string) (int64, error) {
	qq := q.c.Query(orgID).
		Where("productId", docstore.Eq, productID).
		Where("ids."+name, docstore.Eq, value)
	if orderID != "" {
		qq = qq.Where("orderId", docstore.Eq, orderID)
	}
	return q.c.Count(ctx, qq)
}

func (q *queries) Recorded(ctx context.Context, orgID, orderID, productID string) (decimal.Decimal, error) {
	return q.c.Store().Sum(ctx, q.c.Query(orgID).
		Where("orderId", docstore.Eq, orderID).
		Where("productId", docstore.Eq, productID), "count")
}
