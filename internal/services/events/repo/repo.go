// Package repo appends case events to clickhouse and reads them back
package repo

import (
	"context"
	"time"

	"caseline/internal/platform/store"
	"caseline/internal/services/events/domain"
)

// Table is the clickhouse table events land in
const Table = "case_events"

const ddl = `CREATE TABLE IF NOT EXISTS ` + Table + ` (
	at          DateTime64(3, 'UTC'),
	org_id      LowCardinality(String),
	kind        LowCardinality(String),
	order_id    String,
	product_id  String,
	case_id     String,
	identifier  String,
	count       Int32
) ENGINE = MergeTree
ORDER BY (org_id, order_id, at)`

// Repo defines the repository contract for events
type Repo interface {
	Migrate(ctx context.Context) error
	Append(ctx context.Context, evs []domain.Event) error
	Recent(ctx context.Context, orgID, orderID string, limit int) ([]domain.Event, error)
}

type queries struct{ ch store.Clickhouse }

// NewCH binds the repository to a clickhouse seam
func NewCH(ch store.Clickhouse) Repo {
	if ch == nil {
		panic("events repo requires a clickhouse seam")
	}
	return &queries{ch: ch}
}

func (q *queries) Migrate(ctx context.Context) error { return q.ch.Exec(ctx, ddl) }

func (q *queries) Append(ctx context.Context, evs []domain.Event) error {
	rows := make([][]any, 0, len(evs))
	for _, e := range evs {
		rows = append(rows, []any{
			e.At.UTC(), e.OrgID, string(e.Kind), e.OrderID, e.ProductID, e.CaseID, e.Identifier, int32(e.Count),
		})
	}
	return q.ch.Insert(ctx, Table, rows)
}

func (q *queries) Recent(ctx context.Context, orgID, orderID string, limit int) ([]domain.Event, error) {
	const sql = `
select at, kind, order_id, product_id, case_id, identifier, count
from ` + Table + `
where org_id = ? and order_id = ?
order by at desc
limit ?
`
	rows, err := q.ch.Query(ctx, sql, orgID, orderID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Event
	for rows.Next() {
		var (
			e     domain.Event
			at    time.Time
			kind  string
			count int32
		)
		if err := rows.Scan(&at, &kind, &e.OrderID, &e.ProductID, &e.CaseID, &e.Identifier, &count); err != nil {
			return nil, err
		}
		e.At, e.OrgID, e.Kind, e.Count = at, orgID, domain.Kind(kind), int(count)
		out = append(out, e)
	}
	return out, rows.Err()
}
