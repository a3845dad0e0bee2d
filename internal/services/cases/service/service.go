// Package service runs the case lifecycle: minting the next case of an (order, product)
// pair from the product's identifier pattern and destroying cases that stayed empty
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"caseline/internal/core/idtemplate"
	"caseline/internal/modkit/repokit"
	"caseline/internal/platform/docstore"
	perr "caseline/internal/platform/errors"
	"caseline/internal/platform/logger"
	"caseline/internal/platform/metrics"
	"caseline/internal/services/cases/domain"
	"caseline/internal/services/cases/repo"
	eventsdom "caseline/internal/services/events/domain"
	ordersdom "caseline/internal/services/orders/domain"
	productsdom "caseline/internal/services/products/domain"

	"golang.org/x/sync/errgroup"
)

// Service defines the service contract for cases
type Service interface {
	domain.Opener
	domain.Sweeper
	LastCase(ctx context.Context, orgID, orderID, productID string) (domain.Case, bool, error)
	MintNext(ctx context.Context, orgID, orderID, productID string) (domain.Case, error)
	SweepPair(ctx context.Context, orgID, orderID, productID string) (int, error)
	List(ctx context.Context, orgID, orderID, productID string, limit int) ([]domain.Case, error)
	Watch(ctx context.Context, orgID, orderID, productID string) (<-chan repokit.Snapshot[domain.Case], error)
	Preview(in domain.PreviewInput) domain.Preview
}

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo

	gen      *idtemplate.Generator
	products productsdom.Reader
	orders   ordersdom.Reader
	events   eventsdom.Sink
	metrics  *metrics.Metrics
	parallel int
}

// Option configures Svc
type Option func(*Svc)

// WithEvents sends lifecycle events to sink
func WithEvents(sink eventsdom.Sink) Option {
	return func(s *Svc) {
		if sink != nil {
			s.events = sink
		}
	}
}

// WithMetrics counts minted and destroyed cases
func WithMetrics(m *metrics.Metrics) Option { return func(s *Svc) { s.metrics = m } }

// WithParallelism bounds concurrent deletes in DestroyEmptyCases; zero or less means unbounded
func WithParallelism(n int) Option { return func(s *Svc) { s.parallel = n } }

// New creates the cases service. gen carries the clock date tokens are rendered with
func New(db docstore.Store, binder repokit.Binder[repo.Repo], gen *idtemplate.Generator, products productsdom.Reader, orders ordersdom.Reader, opts ...Option) *Svc {
	switch {
	case binder == nil:
		panic("cases.Service requires a non nil Repo binder")
	case gen == nil:
		panic("cases.Service requires an identifier generator")
	case products == nil || orders == nil:
		panic("cases.Service requires products and orders readers")
	}
	s := &Svc{
		Repo:     repokit.MustBind(binder, db),
		gen:      gen,
		products: products,
		orders:   orders,
		events:   eventsdom.Nop{},
		parallel: 8,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreateNextCase mints the identifier after last (or the first one from the raw pattern
// when last is nil) and stores exactly one new, empty case for the pair. A failed write is
// returned as is; nothing is retried
func (s *Svc) CreateNextCase(ctx context.Context, orgID string, order ordersdom.Order, product productsdom.Product, last *domain.Case) (domain.Case, error) {
	schema := product.CaseIdentifierSchema
	previous := schema.Pattern
	if last != nil && last.CaseID != "" {
		previous = last.CaseID
	}
	next := s.gen.Next(previous, schema.Pattern)

	c, err := s.Repo.Create(ctx, orgID, domain.Case{
		CaseID:    next,
		OrderID:   order.ID,
		ProductID: product.ID,
		MaxSize:   schema.MaxSize,
	})
	if err != nil {
		return domain.Case{}, err
	}

	s.metrics.CaseMinted(metrics.Source(ctx))
	s.events.Emit(ctx, eventsdom.Event{
		At:         c.CreatedAt,
		OrgID:      orgID,
		Kind:       eventsdom.KindCaseMinted,
		OrderID:    c.OrderID,
		ProductID:  c.ProductID,
		CaseID:     c.ID,
		Identifier: c.CaseID,
	})
	logger.C(ctx).Info().
		Str("case_id", c.CaseID).
		Str("previous", previous).
		Str("order_id", c.OrderID).
		Str("product_id", c.ProductID).
		Msg("case minted")
	return c, nil
}

// DestroyEmptyCases deletes every case in cases whose count is zero, concurrently and
// independently. It returns how many were deleted; if any delete failed the error joins
// every failure, and deletes that succeeded stay done
func (s *Svc) DestroyEmptyCases(ctx context.Context, cases []domain.Case, orgID string) (int, error) {
	var g errgroup.Group
	if s.parallel > 0 {
		g.SetLimit(s.parallel)
	}

	var (
		mu        sync.Mutex
		destroyed int
		errs      []error
	)
	for _, c := range cases {
		if !c.Empty() {
			continue
		}
		g.Go(func() error {
			if err := s.Repo.Delete(ctx, orgID, c.ID); err != nil {
				mu.Lock()
				errs = append(errs, perr.WithOp(err, "delete case "+c.ID))
				mu.Unlock()
				return nil
			}
			mu.Lock()
			destroyed++
			mu.Unlock()
			s.events.Emit(ctx, eventsdom.Event{
				OrgID:      orgID,
				Kind:       eventsdom.KindCaseDestroyed,
				OrderID:    c.OrderID,
				ProductID:  c.ProductID,
				CaseID:     c.ID,
				Identifier: c.CaseID,
			})
			return nil
		})
	}
	_ = g.Wait()

	s.metrics.CasesDestroyed(metrics.Source(ctx), destroyed)
	if len(errs) > 0 {
		logger.C(ctx).Warn().Int("failed", len(errs)).Int("destroyed", destroyed).Msg("destroying empty cases")
		return destroyed, perr.Wrapf(errors.Join(errs...), perr.CodeOf(errs[0]),
			"%d of %d empty cases could not be destroyed", len(errs), len(errs)+destroyed)
	}
	return destroyed, nil
}

// LastCase returns the most recently created case of the pair
func (s *Svc) LastCase(ctx context.Context, orgID, orderID, productID string) (domain.Case, bool, error) {
	return s.Repo.Last(ctx, orgID, orderID, productID)
}

// OpenCase returns the last case of the pair when it still has room
func (s *Svc) OpenCase(ctx context.Context, orgID, orderID, productID string) (domain.Case, bool, error) {
	last, ok, err := s.Repo.Last(ctx, orgID, orderID, productID)
	if err != nil || !ok || domain.StateOf(last) == domain.StateFull {
		return domain.Case{}, false, err
	}
	return last, true, nil
}

// EnsureOpenCase returns the last case of the pair when it has room and otherwise mints
// the next one: the first case when there is none, the successor of a full case
func (s *Svc) EnsureOpenCase(ctx context.Context, orgID, orderID, productID string) (domain.Case, error) {
	order, product, err := s.pair(ctx, orgID, orderID, productID)
	if err != nil {
		return domain.Case{}, err
	}
	last, ok, err := s.Repo.Last(ctx, orgID, orderID, productID)
	if err != nil {
		return domain.Case{}, err
	}
	if !ok {
		return s.CreateNextCase(ctx, orgID, order, product, nil)
	}
	if domain.StateOf(last) == domain.StateOpen {
		return last, nil
	}
	return s.CreateNextCase(ctx, orgID, order, product, &last)
}

// MintNext mints the successor of the pair's last case regardless of its fill
func (s *Svc) MintNext(ctx context.Context, orgID, orderID, productID string) (domain.Case, error) {
	order, product, err := s.pair(ctx, orgID, orderID, productID)
	if err != nil {
		return domain.Case{}, err
	}
	last, ok, err := s.Repo.Last(ctx, orgID, orderID, productID)
	if err != nil {
		return domain.Case{}, err
	}
	if !ok {
		return s.CreateNextCase(ctx, orgID, order, product, nil)
	}
	return s.CreateNextCase(ctx, orgID, order, product, &last)
}

// SweepPair destroys the empty cases of a pair, keeping the newest so an open case
// waiting for its first unit survives
func (s *Svc) SweepPair(ctx context.Context, orgID, orderID, productID string) (int, error) {
	cases, err := s.Repo.ForPair(ctx, orgID, orderID, productID, 0)
	if err != nil || len(cases) < 2 {
		return 0, err
	}
	return s.DestroyEmptyCases(ctx, cases[1:], orgID)
}

// pair loads the order and product and checks the order can take more units of it
func (s *Svc) pair(ctx context.Context, orgID, orderID, productID string) (ordersdom.Order, productsdom.Product, error) {
	order, err := s.orders.Get(ctx, orgID, orderID)
	if err != nil {
		return ordersdom.Order{}, productsdom.Product{}, err
	}
	if _, ok := order.Item(productID); !ok {
		return ordersdom.Order{}, productsdom.Product{}, perr.WithField(
			perr.InvalidArgf("order %s has no line for product %s", orderID, productID), "productId")
	}
	if order.Status.Terminal() {
		return ordersdom.Order{}, productsdom.Product{}, perr.Conflictf("order %s is %s", orderID, order.Status)
	}
	product, err := s.products.Get(ctx, orgID, productID)
	if err != nil {
		return ordersdom.Order{}, productsdom.Product{}, err
	}
	return order, product, nil
}

// Get loads one case
func (s *Svc) Get(ctx context.Context, orgID, id string) (domain.Case, error) {
	return s.Repo.Get(ctx, orgID, id)
}

// List returns the pair's cases, newest first
func (s *Svc) List(ctx context.Context, orgID, orderID, productID string, limit int) ([]domain.Case, error) {
	if orderID == "" || productID == "" {
		return nil, perr.Validationf("orderId and productId are required")
	}
	return s.Repo.ForPair(ctx, orgID, orderID, productID, limit)
}

// Watch streams the pair's cases whenever they change
func (s *Svc) Watch(ctx context.Context, orgID, orderID, productID string) (<-chan repokit.Snapshot[domain.Case], error) {
	if orderID == "" || productID == "" {
		return nil, perr.Validationf("orderId and productId are required")
	}
	return s.Repo.Watch(ctx, orgID, orderID, productID)
}

// AddUnits adjusts a case's count by n
func (s *Svc) AddUnits(ctx context.Context, orgID, id string, n int) error {
	return s.Repo.AddUnits(ctx, orgID, id, n)
}

// EmptyBefore lists empty cases created before t, oldest first
func (s *Svc) EmptyBefore(ctx context.Context, orgID string, t time.Time, limit int) ([]domain.Case, error) {
	return s.Repo.EmptyBefore(ctx, orgID, t, limit)
}

// Preview expands pattern n times starting from previous, or from the pattern itself
func (s *Svc) Preview(in domain.PreviewInput) domain.Preview {
	n := in.Count
	if n <= 0 {
		n = 1
	}
	prev := in.Previous
	if prev == "" {
		prev = in.Pattern
	}
	return domain.Preview{
		Pattern:  in.Pattern,
		Previous: prev,
		Next:     s.gen.Template(in.Pattern).Preview(prev, s.gen.Now(), n),
	}
}
