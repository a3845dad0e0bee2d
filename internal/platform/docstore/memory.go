package docstore

import (
	"context"
	"strconv"
	"sync"
	"time"

	perr "caseline/internal/platform/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Memory keeps documents in process. Safe for concurrent use
type Memory struct {
	opt options

	mu      sync.RWMutex
	docs    map[Ref]Doc
	last    time.Time
	changed chan struct{}
	closed  bool
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty store
func NewMemory(opts ...Option) *Memory {
	return &Memory{
		opt:     build(opts),
		docs:    map[Ref]Doc{},
		changed: make(chan struct{}),
	}
}

// stamp returns a strictly increasing time so createdAt ordering is total
func (m *Memory) stamp() time.Time {
	t := m.opt.now()
	if !t.After(m.last) {
		t = m.last.Add(time.Nanosecond)
	}
	m.last = t
	return t
}

// notify wakes subscribers; callers hold mu
func (m *Memory) notify() {
	close(m.changed)
	m.changed = make(chan struct{})
}

func (m *Memory) signal() <-chan struct{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.changed
}

func (m *Memory) check() error {
	if m.closed {
		return perr.Unavailablef("docstore: closed")
	}
	return nil
}

func (m *Memory) Create(ctx context.Context, orgID, collection string, data Fields) (Ref, error) {
	refs, err := m.Batch(ctx, orgID, []Write{Put(Ref{OrgID: orgID, Collection: collection}, data)})
	if err != nil {
		return Ref{}, err
	}
	return refs[0], nil
}

func (m *Memory) Get(ctx context.Context, ref Ref) (Doc, error) {
	if err := ref.validate(); err != nil {
		return Doc{}, err
	}
	if err := ctx.Err(); err != nil {
		return Doc{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(); err != nil {
		return Doc{}, err
	}
	d, ok := m.docs[ref]
	if !ok {
		return Doc{}, perr.NotFoundf("docstore: %s not found", ref.Path())
	}
	return copyDoc(d)
}

func (m *Memory) Update(ctx context.Context, ref Ref, fields Fields) error {
	_, err := m.Batch(ctx, ref.OrgID, []Write{Patch(ref, fields)})
	return err
}

func (m *Memory) Delete(ctx context.Context, ref Ref) error {
	_, err := m.Batch(ctx, ref.OrgID, []Write{Remove(ref)})
	return err
}

// Batch stages every write against a copy and publishes only when all succeed
func (m *Memory) Batch(ctx context.Context, orgID string, writes []Write) ([]Ref, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return nil, err
	}

	staged := map[Ref]*Doc{}
	get := func(r Ref) (Doc, bool) {
		if d, ok := staged[r]; ok {
			if d == nil {
				return Doc{}, false
			}
			return *d, true
		}
		d, ok := m.docs[r]
		return d, ok
	}

	refs := make([]Ref, 0, len(writes))
	for i, w := range writes {
		ref, err := prepare(orgID, w)
		if err != nil {
			return nil, perr.WithOp(err, opName(i))
		}
		switch w.Kind {
		case WriteCreate:
			if _, exists := get(ref); exists {
				return nil, perr.DuplicateKeyf("docstore: %s already exists", ref.Path())
			}
			data, err := canonFields(w.Data)
			if err != nil {
				return nil, err
			}
			now := m.stamp()
			staged[ref] = &Doc{ID: ref.ID, OrgID: ref.OrgID, Collection: ref.Collection, Data: data, CreatedAt: now, UpdatedAt: now}
		case WriteUpdate:
			cur, ok := get(ref)
			if !ok {
				return nil, perr.NotFoundf("docstore: %s not found", ref.Path())
			}
			data, err := merge(cur.Data, w.Data)
			if err != nil {
				return nil, err
			}
			cur.Data, cur.UpdatedAt = data, m.stamp()
			staged[ref] = &cur
		case WriteDelete:
			staged[ref] = nil
		default:
			return nil, perr.InvalidArgf("docstore: unknown write kind %d", w.Kind)
		}
		refs = append(refs, ref)
	}

	for r, d := range staged {
		if d == nil {
			delete(m.docs, r)
			continue
		}
		m.docs[r] = *d
	}
	if len(staged) > 0 {
		m.notify()
	}
	return refs, nil
}

func (m *Memory) Query(ctx context.Context, q Query) ([]Doc, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filters, err := canonFilters(q.Filters)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	if err := m.check(); err != nil {
		m.mu.RUnlock()
		return nil, err
	}
	var out []Doc
	for r, d := range m.docs {
		if r.OrgID != q.OrgID || r.Collection != q.Collection {
			continue
		}
		if matches(d, filters) {
			out = append(out, d)
		}
	}
	m.mu.RUnlock()

	sortDocs(out, q.OrderBy, q.Desc)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	for i := range out {
		if out[i], err = copyDoc(out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (m *Memory) Count(ctx context.Context, q Query) (int64, error) {
	docs, err := m.Query(ctx, q)
	return int64(len(docs)), err
}

func (m *Memory) Sum(ctx context.Context, q Query, field string) (decimal.Decimal, error) {
	docs, err := m.Query(ctx, q)
	if err != nil {
		return decimal.Zero, err
	}
	return sumField(docs, field), nil
}

func (m *Memory) Subscribe(ctx context.Context, q Query) (<-chan Snapshot, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	return stream(ctx, func(ctx context.Context) ([]Doc, error) { return m.Query(ctx, q) }, m.signal), nil
}

// Close rejects further calls and wakes subscribers
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		m.notify()
	}
	return nil
}

// prepare resolves the target of a write, filling the organization and generating ids
func prepare(orgID string, w Write) (Ref, error) {
	ref := w.Ref
	if ref.OrgID == "" {
		ref.OrgID = orgID
	}
	if ref.OrgID != orgID {
		return Ref{}, perr.Forbiddenf("docstore: write to %s outside organization %s", ref.Path(), orgID)
	}
	if w.Kind == WriteCreate && ref.ID == "" {
		ref.ID = uuid.NewString()
	}
	return ref, ref.validate()
}

func opName(i int) string { return "write[" + strconv.Itoa(i) + "]" }

func copyDoc(d Doc) (Doc, error) {
	data, err := clone(d.Data)
	if err != nil {
		return Doc{}, err
	}
	d.Data = data
	return d, nil
}
