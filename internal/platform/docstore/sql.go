package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	perr "caseline/internal/platform/errors"
	"caseline/internal/platform/store"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

const table = "documents"

// txAttempts bounds retries of read-modify-write transactions under contention
const txAttempts = 4

// SQL stores documents in one table of a SQL backend
type SQL struct {
	db  store.TxRunner
	d   dialect
	sb  sq.StatementBuilderType
	opt options

	mu   sync.Mutex
	last time.Time
}

var _ Store = (*SQL)(nil)

// NewSQL binds a document store to db using the given dialect
func NewSQL(db store.TxRunner, d Dialect, opts ...Option) *SQL {
	dd := dialectFor(d)
	return &SQL{
		db:  db,
		d:   dd,
		sb:  sq.StatementBuilder.PlaceholderFormat(dd.format()),
		opt: build(opts),
	}
}

// Migrate creates the documents table when missing
func (s *SQL) Migrate(ctx context.Context) error {
	for _, stmt := range s.d.schema() {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return perr.FromStore(err, "docstore: migrate")
		}
	}
	return nil
}

// stamp returns a strictly increasing time for this process
func (s *SQL) stamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.opt.now()
	if !t.After(s.last) {
		t = s.last.Add(time.Nanosecond)
	}
	s.last = t
	return t
}

func (s *SQL) Create(ctx context.Context, orgID, collection string, data Fields) (Ref, error) {
	ref, err := prepare(orgID, Put(Ref{OrgID: orgID, Collection: collection}, data))
	if err != nil {
		return Ref{}, err
	}
	if err := s.insert(ctx, s.db, ref, data); err != nil {
		return Ref{}, err
	}
	return ref, nil
}

func (s *SQL) insert(ctx context.Context, q store.RowQuerier, ref Ref, data Fields) error {
	clean, err := canonFields(data)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(clean)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "docstore: encode payload")
	}
	now := s.stamp().UnixNano()
	stmt, args, err := s.sb.Insert(table).
		Columns("org_id", "collection", "id", "data", "created_at", "updated_at").
		Values(ref.OrgID, ref.Collection, ref.ID, sq.Expr(s.d.dataValue(), string(raw)), now, now).
		ToSql()
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "docstore: build insert")
	}
	if _, err := q.Exec(ctx, stmt, args...); err != nil {
		return perr.FromStoref(err, "docstore: create %s", ref.Path())
	}
	return nil
}

func (s *SQL) base(cols ...string) sq.SelectBuilder {
	return s.sb.Select(cols...).From(table)
}

func (s *SQL) docColumns() []string {
	return []string{"org_id", "collection", "id", s.d.dataColumn(), "created_at", "updated_at"}
}

func scanDoc(r store.Row) (Doc, error) {
	var (
		d        Doc
		raw      string
		cat, uat int64
	)
	if err := r.Scan(&d.OrgID, &d.Collection, &d.ID, &raw, &cat, &uat); err != nil {
		return Doc{}, err
	}
	if err := json.Unmarshal([]byte(raw), &d.Data); err != nil {
		return Doc{}, perr.Wrapf(err, perr.ErrorCodeJSON, "docstore: payload of %s", d.Ref().Path())
	}
	if d.Data == nil {
		d.Data = Fields{}
	}
	d.CreatedAt, d.UpdatedAt = time.Unix(0, cat), time.Unix(0, uat)
	return d, nil
}

func byRef(ref Ref) sq.Eq {
	return sq.Eq{"org_id": ref.OrgID, "collection": ref.Collection, "id": ref.ID}
}

func (s *SQL) Get(ctx context.Context, ref Ref) (Doc, error) {
	if err := ref.validate(); err != nil {
		return Doc{}, err
	}
	return s.get(ctx, s.db, ref, false)
}

func (s *SQL) get(ctx context.Context, q store.RowQuerier, ref Ref, lock bool) (Doc, error) {
	b := s.base(s.docColumns()...).Where(byRef(ref))
	if lock && s.d.lockRow() != "" {
		b = b.Suffix(s.d.lockRow())
	}
	stmt, args, err := b.ToSql()
	if err != nil {
		return Doc{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "docstore: build get")
	}
	d, err := store.One(ctx, q, scanDoc, stmt, args...)
	if errors.Is(err, store.ErrNoRows) {
		return Doc{}, perr.NotFoundf("docstore: %s not found", ref.Path())
	}
	if err != nil {
		return Doc{}, perr.FromStoref(err, "docstore: get %s", ref.Path())
	}
	return d, nil
}

func (s *SQL) Update(ctx context.Context, ref Ref, fields Fields) error {
	if err := ref.validate(); err != nil {
		return err
	}
	return store.RunTx(ctx, s.db, txAttempts, func(q store.RowQuerier) error {
		return s.update(ctx, q, ref, fields)
	})
}

// update is a read-modify-write of one row inside the caller's transaction
func (s *SQL) update(ctx context.Context, q store.RowQuerier, ref Ref, fields Fields) error {
	cur, err := s.get(ctx, q, ref, true)
	if err != nil {
		return err
	}
	data, err := merge(cur.Data, fields)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "docstore: encode payload")
	}
	stmt, args, err := s.sb.Update(table).
		Set("data", sq.Expr(s.d.dataValue(), string(raw))).
		Set("updated_at", s.stamp().UnixNano()).
		Where(byRef(ref)).
		ToSql()
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "docstore: build update")
	}
	if _, err := q.Exec(ctx, stmt, args...); err != nil {
		return perr.FromStoref(err, "docstore: update %s", ref.Path())
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, ref Ref) error {
	if err := ref.validate(); err != nil {
		return err
	}
	return s.remove(ctx, s.db, ref)
}

func (s *SQL) remove(ctx context.Context, q store.RowQuerier, ref Ref) error {
	stmt, args, err := s.sb.Delete(table).Where(byRef(ref)).ToSql()
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "docstore: build delete")
	}
	if _, err := q.Exec(ctx, stmt, args...); err != nil {
		return perr.FromStoref(err, "docstore: delete %s", ref.Path())
	}
	return nil
}

// Batch runs every write in one transaction
func (s *SQL) Batch(ctx context.Context, orgID string, writes []Write) ([]Ref, error) {
	refs := make([]Ref, len(writes))
	for i, w := range writes {
		ref, err := prepare(orgID, w)
		if err != nil {
			return nil, perr.WithOp(err, opName(i))
		}
		refs[i] = ref
	}
	err := store.RunTx(ctx, s.db, txAttempts, func(q store.RowQuerier) error {
		for i, w := range writes {
			var err error
			switch w.Kind {
			case WriteCreate:
				err = s.insert(ctx, q, refs[i], w.Data)
			case WriteUpdate:
				err = s.update(ctx, q, refs[i], w.Data)
			case WriteDelete:
				err = s.remove(ctx, q, refs[i])
			default:
				err = perr.InvalidArgf("docstore: unknown write kind %d", w.Kind)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// where renders the organization, collection and filters of q
func (s *SQL) where(q Query) (sq.And, error) {
	conds := sq.And{sq.Eq{"org_id": q.OrgID, "collection": q.Collection}}
	filters, err := canonFilters(q.Filters)
	if err != nil {
		return nil, err
	}
	for _, f := range filters {
		c, err := s.cond(f)
		if err != nil {
			return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "docstore: filter"), f.Field)
		}
		conds = append(conds, c)
	}
	return conds, nil
}

var sqlOps = map[Op]string{Eq: "=", Lt: "<", Lte: "<=", Gt: ">", Gte: ">="}

func (s *SQL) cond(f Filter) (sq.Sqlizer, error) {
	if isReserved(f.Field) {
		return reservedCond(f)
	}
	path := fieldPath(f.Field)
	if f.Op == In {
		return s.d.member(path, listOf(f.Value))
	}
	if jsonType(f.Value) == "" {
		return nil, errors.New("only scalar values can be compared")
	}
	return s.d.compare(path, sqlOps[f.Op], f.Value)
}

// reservedCond filters on the metadata columns
func reservedCond(f Filter) (sq.Sqlizer, error) {
	col := column(f.Field)
	var vals []any
	if isTimeField(f.Field) {
		ts, _ := asTime(f.Value, f.Op)
		for _, t := range ts {
			vals = append(vals, t.UnixNano())
		}
	} else if f.Op == In {
		vals = listOf(f.Value)
	} else {
		vals = []any{f.Value}
	}
	if f.Op == In {
		return sq.Eq{col: vals}, nil
	}
	if len(vals) != 1 {
		return nil, errors.New("expected one value")
	}
	return sq.Expr(col+" "+sqlOps[f.Op]+" ?", vals[0]), nil
}

func column(field string) string {
	switch field {
	case FieldCreatedAt:
		return "created_at"
	case FieldUpdatedAt:
		return "updated_at"
	}
	return "id"
}

func (s *SQL) order(b sq.SelectBuilder, q Query) sq.SelectBuilder {
	dir := " ASC"
	if q.Desc {
		dir = " DESC"
	}
	switch {
	case q.OrderBy == "":
	case q.OrderBy == FieldCreatedAt:
	case isReserved(q.OrderBy):
		b = b.OrderBy(column(q.OrderBy) + dir)
	default:
		e, args, _ := s.d.field(fieldPath(q.OrderBy)).ToSql()
		b = b.OrderByClause(e+s.d.nulls(q.Desc), args...)
	}
	return b.OrderBy("created_at"+dir, "id"+dir)
}

func (s *SQL) Query(ctx context.Context, q Query) ([]Doc, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	conds, err := s.where(q)
	if err != nil {
		return nil, err
	}
	b := s.order(s.base(s.docColumns()...).Where(conds), q)
	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}
	stmt, args, err := b.ToSql()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "docstore: build query")
	}
	docs, err := store.Many(ctx, s.db, scanDoc, stmt, args...)
	if err != nil {
		return nil, perr.FromStoref(err, "docstore: query %s/%s", q.OrgID, q.Collection)
	}
	return docs, nil
}

// limited wraps a limited query so aggregates only see the first Limit rows
func (s *SQL) limited(q Query, conds sq.And) sq.SelectBuilder {
	inner := s.order(s.base("id", "data", "created_at").Where(conds), q).Limit(uint64(q.Limit))
	return s.sb.Select().FromSelect(inner, "d")
}

func (s *SQL) Count(ctx context.Context, q Query) (int64, error) {
	if err := q.validate(); err != nil {
		return 0, err
	}
	conds, err := s.where(q)
	if err != nil {
		return 0, err
	}
	b := s.base("COUNT(*)").Where(conds)
	if q.Limit > 0 {
		b = s.limited(q, conds).Column("COUNT(*)")
	}
	stmt, args, err := b.ToSql()
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "docstore: build count")
	}
	n, err := store.Scalar[int64](ctx, s.db, stmt, args...)
	if err != nil {
		return 0, perr.FromStoref(err, "docstore: count %s/%s", q.OrgID, q.Collection)
	}
	return n, nil
}

func (s *SQL) Sum(ctx context.Context, q Query, field string) (decimal.Decimal, error) {
	if err := q.validate(); err != nil {
		return decimal.Zero, err
	}
	if isReserved(field) {
		return decimal.Zero, perr.InvalidArgf("docstore: cannot sum %s", field)
	}
	conds, err := s.where(q)
	if err != nil {
		return decimal.Zero, err
	}
	var b sq.SelectBuilder
	if q.Limit > 0 {
		b = s.limited(q, conds).Column(s.d.sum(fieldPath(field)))
	} else {
		b = s.sb.Select().Column(s.d.sum(fieldPath(field))).From(table).Where(conds)
	}
	stmt, args, err := b.ToSql()
	if err != nil {
		return decimal.Zero, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "docstore: build sum")
	}
	raw, err := store.Scalar[string](ctx, s.db, stmt, args...)
	if err != nil {
		return decimal.Zero, perr.FromStoref(err, "docstore: sum %s", field)
	}
	total, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, perr.Wrapf(err, perr.ErrorCodeDB, "docstore: sum %s returned %q", field, raw)
	}
	return total, nil
}

// Subscribe polls the query and emits when the result set changes
func (s *SQL) Subscribe(ctx context.Context, q Query) (<-chan Snapshot, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	run := func(ctx context.Context) ([]Doc, error) {
		docs, err := s.Query(ctx, q)
		if err != nil && ctx.Err() == nil {
			s.opt.log.Warn().Err(err).Str("org_id", q.OrgID).Str("collection", q.Collection).Msg("subscription poll failed")
		}
		return docs, err
	}
	return stream(ctx, run, ticker(s.opt.poll)), nil
}

// Close is a no-op; the platform store owns the connection
func (s *SQL) Close() error { return nil }
