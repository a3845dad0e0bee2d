package repokit

import (
	"context"
	"strings"

	"caseline/internal/platform/docstore"
	perr "caseline/internal/platform/errors"
)

// Collection is a typed view of one document collection. T must carry json tags for
// id, createdAt and updatedAt to see document metadata
type Collection[T any] struct {
	db   docstore.Store
	name string
}

// NewCollection returns a typed collection named name
func NewCollection[T any](db docstore.Store, name string) Collection[T] {
	return Collection[T]{db: db, name: name}
}

// Name is the collection name
func (c Collection[T]) Name() string { return c.name }

// Store returns the underlying document store
func (c Collection[T]) Store() docstore.Store { return c.db }

// Ref addresses a document of this collection
func (c Collection[T]) Ref(orgID, id string) docstore.Ref {
	return docstore.Ref{OrgID: orgID, Collection: c.name, ID: id}
}

// Query starts a query over this collection for one organization
func (c Collection[T]) Query(orgID string) docstore.Query { return docstore.From(orgID, c.name) }

// Get loads one document; a miss is NotFound naming the collection
func (c Collection[T]) Get(ctx context.Context, orgID, id string) (T, error) {
	var zero T
	d, err := c.db.Get(ctx, c.Ref(orgID, id))
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return zero, perr.NotFoundf("%s %s not found", singular(c.name), id)
		}
		return zero, err
	}
	return docstore.Decode[T](d)
}

// Create stores v and returns it as persisted, with id and timestamps filled
func (c Collection[T]) Create(ctx context.Context, orgID string, v T) (T, error) {
	var zero T
	f, err := docstore.Encode(v)
	if err != nil {
		return zero, err
	}
	ref, err := c.db.Create(ctx, orgID, c.name, f)
	if err != nil {
		return zero, err
	}
	return c.Get(ctx, orgID, ref.ID)
}

// Put builds the batch write that creates v, for use with docstore Batch
func (c Collection[T]) Put(orgID, id string, v T) (docstore.Write, error) {
	f, err := docstore.Encode(v)
	if err != nil {
		return docstore.Write{}, err
	}
	return docstore.Put(c.Ref(orgID, id), f), nil
}

// Update merges fields into the document
func (c Collection[T]) Update(ctx context.Context, orgID, id string, fields docstore.Fields) error {
	err := c.db.Update(ctx, c.Ref(orgID, id), fields)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("%s %s not found", singular(c.name), id)
	}
	return err
}

// Delete removes the document; a missing document is not an error
func (c Collection[T]) Delete(ctx context.Context, orgID, id string) error {
	return c.db.Delete(ctx, c.Ref(orgID, id))
}

// Find runs q and decodes every match
func (c Collection[T]) Find(ctx context.Context, q docstore.Query) ([]T, error) {
	docs, err := c.db.Query(ctx, c.scoped(q))
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[T](docs)
}

// First returns the first match of q and whether there was one
func (c Collection[T]) First(ctx context.Context, q docstore.Query) (T, bool, error) {
	var zero T
	xs, err := c.Find(ctx, q.Take(1))
	if err != nil || len(xs) == 0 {
		return zero, false, err
	}
	return xs[0], true, nil
}

// Count counts the matches of q
func (c Collection[T]) Count(ctx context.Context, q docstore.Query) (int64, error) {
	return c.db.Count(ctx, c.scoped(q))
}

// Watch decodes a live query; decode failures arrive as the snapshot error
func (c Collection[T]) Watch(ctx context.Context, q docstore.Query) (<-chan Snapshot[T], error) {
	in, err := c.db.Subscribe(ctx, c.scoped(q))
	if err != nil {
		return nil, err
	}
	out := make(chan Snapshot[T])
	go func() {
		defer close(out)
		for s := range in {
			next := Snapshot[T]{Err: s.Err}
			if s.Err == nil {
				next.Items, next.Err = docstore.DecodeAll[T](s.Docs)
			}
			select {
			case out <- next:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Snapshot is one typed emission of Watch
type Snapshot[T any] struct {
	Items []T
	Err   error
}

func (c Collection[T]) scoped(q docstore.Query) docstore.Query {
	q.Collection = c.name
	return q
}

// singular trims a plural collection name for messages: "cases" -> "case", "boxes" -> "box",
// "unitValues" -> "unitValue"
func singular(name string) string {
	for _, suf := range []string{"xes", "ches", "shes", "sses", "zes"} {
		if len(name) > len(suf) && strings.HasSuffix(name, suf) {
			return name[:len(name)-2]
		}
	}
	if n := len(name); n > 1 && name[n-1] == 's' && name[n-2] != 's' {
		return name[:n-1]
	}
	return name
}
