// Package docstore is the tenant scoped document store behind orders, products and cases.
//
// Every document lives under organizations/{orgId}/{collection}/{id}. Two backends
// implement Store: an in-process memory store and a SQL store over the platform
// store seam (postgres jsonb or sqlite json1).
package docstore

import (
	"context"
	"strings"
	"time"

	perr "caseline/internal/platform/errors"

	"github.com/shopspring/decimal"
)

// Fields is the JSON shaped payload of a document
type Fields = map[string]any

// Reserved field names map onto document metadata instead of payload keys
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Doc is one stored document
type Doc struct {
	ID         string
	OrgID      string
	Collection string
	Data       Fields
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Ref returns the address of d
func (d Doc) Ref() Ref { return Ref{OrgID: d.OrgID, Collection: d.Collection, ID: d.ID} }

// Ref addresses a single document
type Ref struct {
	OrgID      string
	Collection string
	ID         string
}

// Path renders the hierarchical address
func (r Ref) Path() string {
	return "organizations/" + r.OrgID + "/" + r.Collection + "/" + r.ID
}

func (r Ref) validate() error {
	switch {
	case strings.TrimSpace(r.OrgID) == "":
		return perr.InvalidArgf("docstore: missing organization id")
	case strings.TrimSpace(r.Collection) == "":
		return perr.InvalidArgf("docstore: missing collection")
	case strings.TrimSpace(r.ID) == "":
		return perr.InvalidArgf("docstore: missing document id")
	}
	return nil
}

// Op is a filter comparison
type Op string

const (
	Eq  Op = "=="
	Lt  Op = "<"
	Lte Op = "<="
	Gt  Op = ">"
	Gte Op = ">="
	In  Op = "in"
)

func (o Op) valid() bool {
	switch o {
	case Eq, Lt, Lte, Gt, Gte, In:
		return true
	}
	return false
}

// Filter restricts a query on one field; nested payload fields use dots ("schema.maxSize")
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Query selects documents from one collection of one organization
type Query struct {
	OrgID      string
	Collection string
	Filters    []Filter
	OrderBy    string
	Desc       bool
	Limit      int
}

// From starts a query over a collection
func From(orgID, collection string) Query {
	return Query{OrgID: orgID, Collection: collection}
}

// Where appends a filter
func (q Query) Where(field string, op Op, v any) Query {
	fs := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(fs, q.Filters)
	q.Filters = append(fs, Filter{Field: field, Op: op, Value: v})
	return q
}

// Order sorts by one field; ties break on createdAt then id in the same direction
func (q Query) Order(field string, desc bool) Query {
	q.OrderBy, q.Desc = field, desc
	return q
}

// Take caps the result size; zero means unlimited
func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

func (q Query) validate() error {
	if strings.TrimSpace(q.OrgID) == "" {
		return perr.InvalidArgf("docstore: missing organization id")
	}
	if strings.TrimSpace(q.Collection) == "" {
		return perr.InvalidArgf("docstore: missing collection")
	}
	if q.Limit < 0 {
		return perr.InvalidArgf("docstore: negative limit %d", q.Limit)
	}
	for _, f := range q.Filters {
		if strings.TrimSpace(f.Field) == "" {
			return perr.InvalidArgf("docstore: filter without field")
		}
		if !f.Op.valid() {
			return perr.InvalidArgf("docstore: unknown operator %q", f.Op)
		}
		if isTimeField(f.Field) {
			if _, ok := asTime(f.Value, f.Op); !ok {
				return perr.InvalidArgf("docstore: %s filter needs time values", f.Field)
			}
		}
	}
	return nil
}

// Snapshot is one emission of a live query; Err is set when the query failed
type Snapshot struct {
	Docs []Doc
	Err  error
}

// WriteKind names the mutation of a batched write
type WriteKind int

const (
	WriteCreate WriteKind = iota
	WriteUpdate
	WriteDelete
)

// Write is one mutation inside Batch. A create with an empty Ref.ID gets a generated id
type Write struct {
	Kind WriteKind
	Ref  Ref
	Data Fields
}

// Put creates a document at ref
func Put(ref Ref, data Fields) Write { return Write{Kind: WriteCreate, Ref: ref, Data: data} }

// Patch merges fields into the document at ref
func Patch(ref Ref, fields Fields) Write { return Write{Kind: WriteUpdate, Ref: ref, Data: fields} }

// Remove deletes the document at ref
func Remove(ref Ref) Write { return Write{Kind: WriteDelete, Ref: ref} }

// Store is the document store contract
type Store interface {
	// Create stores data under a new id and returns its address
	Create(ctx context.Context, orgID, collection string, data Fields) (Ref, error)
	// Get returns the document or a NotFound error
	Get(ctx context.Context, ref Ref) (Doc, error)
	// Update merges fields into an existing document; Inc values add to numbers
	Update(ctx context.Context, ref Ref, fields Fields) error
	// Delete removes the document; deleting a missing document is not an error
	Delete(ctx context.Context, ref Ref) error
	Query(ctx context.Context, q Query) ([]Doc, error)
	Count(ctx context.Context, q Query) (int64, error)
	// Sum adds up the numeric values of field over the matching documents
	Sum(ctx context.Context, q Query, field string) (decimal.Decimal, error)
	// Subscribe emits the current result set and again whenever it changes.
	// The channel closes when ctx ends
	Subscribe(ctx context.Context, q Query) (<-chan Snapshot, error)
	// Batch applies every write or none of them
	Batch(ctx context.Context, orgID string, writes []Write) ([]Ref, error)
	Close() error
}

// increment is the Update sentinel produced by Inc
type increment struct{ by float64 }

// Inc adds n to a numeric field on Update; a missing field counts as zero
func Inc(n float64) any { return increment{by: n} }

func isTimeField(f string) bool { return f == FieldCreatedAt || f == FieldUpdatedAt }

func isReserved(f string) bool { return f == FieldID || isTimeField(f) }

// asTime checks that a filter value on a timestamp field holds times
func asTime(v any, op Op) ([]time.Time, bool) {
	if op == In {
		ts, ok := v.([]time.Time)
		return ts, ok
	}
	t, ok := v.(time.Time)
	return []time.Time{t}, ok
}

func fieldPath(f string) []string { return strings.Split(f, ".") }
