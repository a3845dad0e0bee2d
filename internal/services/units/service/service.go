// Package service records unit values into cases and reports order progress
package service

import (
	"context"
	"sort"

	"caseline/internal/core/normalize"
	"caseline/internal/modkit/repokit"
	"caseline/internal/platform/docstore"
	perr "caseline/internal/platform/errors"
	"caseline/internal/platform/logger"
	"caseline/internal/platform/metrics"
	"caseline/internal/platform/net/http/bind"
	casesdom "caseline/internal/services/cases/domain"
	eventsdom "caseline/internal/services/events/domain"
	ordersdom "caseline/internal/services/orders/domain"
	productsdom "caseline/internal/services/products/domain"
	productssvc "caseline/internal/services/products/service"
	"caseline/internal/services/units/domain"
	"caseline/internal/services/units/repo"

	"github.com/shopspring/decimal"
)

// SourceAuto tags cases minted while recording units
const SourceAuto = "auto"

// Service defines the service contract for units
type Service interface {
	Record(ctx context.Context, orgID string, in domain.UnitInput) (domain.Recorded, error)
	Get(ctx context.Context, orgID, id string) (domain.UnitValue, error)
	Delete(ctx context.Context, orgID, id string) error
	List(ctx context.Context, orgID string, f domain.Filter, limit int) ([]domain.UnitValue, int64, error)
	Progress(ctx context.Context, orgID, orderID string) ([]domain.Progress, error)
}

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo

	products productsdom.Reader
	orders   ordersdom.Reader
	cases    casesdom.Opener
	events   eventsdom.Sink
	metrics  *metrics.Metrics
}

// Option configures Svc
type Option func(*Svc)

// WithEvents sends unit events to sink
func WithEvents(sink eventsdom.Sink) Option {
	return func(s *Svc) {
		if sink != nil {
			s.events = sink
		}
	}
}

// WithMetrics counts recorded units
func WithMetrics(m *metrics.Metrics) Option { return func(s *Svc) { s.metrics = m } }

// New creates the units service
func New(db docstore.Store, binder repokit.Binder[repo.Repo], products productsdom.Reader, orders ordersdom.Reader, cases casesdom.Opener, opts ...Option) *Svc {
	if binder == nil {
		panic("units.Service requires a non nil Repo binder")
	}
	if products == nil || orders == nil || cases == nil {
		panic("units.Service requires products, orders and cases ports")
	}
	s := &Svc{Repo: repokit.MustBind(binder, db), products: products, orders: orders, cases: cases, events: eventsdom.Nop{}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Record validates in against the product's unit schemas and packs it into a case.
// With autoGen the pair's open case is minted on demand and the successor is minted
// as soon as the unit fills its case
func (s *Svc) Record(ctx context.Context, orgID string, in domain.UnitInput) (domain.Recorded, error) {
	if err := bind.Struct(in); err != nil {
		return domain.Recorded{}, err
	}
	count := in.Count
	if count == 0 {
		count = 1
	}

	order, err := s.orders.Get(ctx, orgID, in.OrderID)
	if err != nil {
		return domain.Recorded{}, err
	}
	if _, ok := order.Item(in.ProductID); !ok {
		return domain.Recorded{}, perr.WithField(
			perr.InvalidArgf("order %s has no line for product %s", in.OrderID, in.ProductID), "productId")
	}
	if order.Status.Terminal() {
		return domain.Recorded{}, perr.Conflictf("order %s is %s", order.ID, order.Status)
	}
	product, err := s.products.Get(ctx, orgID, in.ProductID)
	if err != nil {
		return domain.Recorded{}, err
	}

	ids, err := identifiers(product.UnitIdentifierSchema, in.IDs)
	if err != nil {
		return domain.Recorded{}, err
	}
	if err := s.checkUnique(ctx, orgID, order.ID, product, ids); err != nil {
		return domain.Recorded{}, err
	}

	c, err := s.target(ctx, orgID, in, product.CaseIdentifierSchema.AutoGen)
	if err != nil {
		return domain.Recorded{}, err
	}
	if count > c.Room() {
		return domain.Recorded{}, perr.WithField(
			perr.InvalidArgf("case %s has room for %d more units", c.CaseID, c.Room()), "count")
	}

	u, err := s.Repo.Create(ctx, orgID, domain.UnitValue{
		OrderID:   order.ID,
		ProductID: product.ID,
		CaseID:    c.ID,
		IDs:       ids,
		Count:     count,
	})
	if err != nil {
		return domain.Recorded{}, err
	}
	if err := s.cases.AddUnits(ctx, orgID, c.ID, count); err != nil {
		if derr := s.Repo.Delete(ctx, orgID, u.ID); derr != nil {
			logger.C(ctx).Error().Err(derr).Str("unit_id", u.ID).Msg("unit left without case count")
		}
		return domain.Recorded{}, err
	}
	c.Count += count

	s.metrics.UnitRecorded()
	s.events.Emit(ctx, eventsdom.Event{
		At:         u.CreatedAt,
		OrgID:      orgID,
		Kind:       eventsdom.KindUnitRecorded,
		OrderID:    u.OrderID,
		ProductID:  u.ProductID,
		CaseID:     c.ID,
		Identifier: c.CaseID,
		Count:      count,
	})

	out := domain.Recorded{Unit: u, Case: casesdom.ViewOf(c)}
	if casesdom.StateOf(c) == casesdom.StateFull && product.CaseIdentifierSchema.AutoGen {
		next, err := s.cases.EnsureOpenCase(metrics.WithSource(ctx, SourceAuto), orgID, order.ID, product.ID)
		if err != nil {
			// the unit is stored; the next record call mints the case
			logger.C(ctx).Warn().Err(err).Str("case_id", c.CaseID).Msg("minting the case after a full one")
			return out, nil
		}
		v := casesdom.ViewOf(next)
		out.Next = &v
	}
	return out, nil
}

// target resolves the case a unit goes into
func (s *Svc) target(ctx context.Context, orgID string, in domain.UnitInput, autoGen bool) (casesdom.Case, error) {
	if in.CaseID != "" {
		c, err := s.cases.Get(ctx, orgID, in.CaseID)
		if err != nil {
			return casesdom.Case{}, err
		}
		if c.OrderID != in.OrderID || c.ProductID != in.ProductID {
			return casesdom.Case{}, perr.WithField(
				perr.InvalidArgf("case %s belongs to another order or product", c.CaseID), "caseId")
		}
		if casesdom.StateOf(c) == casesdom.StateFull {
			return casesdom.Case{}, perr.Conflictf("case %s is full", c.CaseID)
		}
		return c, nil
	}
	if autoGen {
		return s.cases.EnsureOpenCase(metrics.WithSource(ctx, SourceAuto), orgID, in.OrderID, in.ProductID)
	}
	c, ok, err := s.cases.OpenCase(ctx, orgID, in.OrderID, in.ProductID)
	if err != nil {
		return casesdom.Case{}, err
	}
	if !ok {
		return casesdom.Case{}, perr.Conflictf("no open case for order %s and product %s", in.OrderID, in.ProductID)
	}
	return c, nil
}

// identifiers normalizes the submitted ids against the product's unit schemas. Missing
// values take the schema default; unique identifiers are required
func identifiers(schemas []productsdom.UnitSchema, in map[string]string) (map[string]string, error) {
	known := make(map[string]bool, len(schemas))
	out := make(map[string]string, len(schemas))
	for _, sc := range schemas {
		known[sc.Name] = true
		v, ok := in[sc.Name]
		if !ok || normalize.Clean(v) == "" {
			v = sc.DefaultValue
		}
		v = normalize.Apply(v, sc.Transform)
		if v == "" {
			if sc.Unique {
				return nil, perr.WithField(perr.Validationf("%s is required", sc.Name), sc.Name)
			}
			continue
		}
		if err := productssvc.MatchPattern(sc, v); err != nil {
			return nil, err
		}
		out[sc.Name] = v
	}

	var unknown []string
	for k := range in {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, perr.WithField(perr.InvalidArgf("unknown unit identifiers %v", unknown), "ids")
	}
	return out, nil
}

func (s *Svc) checkUnique(ctx context.Context, orgID, orderID string, p productsdom.Product, ids map[string]string) error {
	for _, sc := range p.UnitIdentifierSchema {
		v, ok := ids[sc.Name]
		if !sc.Unique || !ok {
			continue
		}
		scopeOrder := orderID
		if sc.Scope == productsdom.ScopeOrganization {
			scopeOrder = ""
		}
		n, err := s.Repo.CountIdentifier(ctx, orgID, p.ID, scopeOrder, sc.Name, v)
		if err != nil {
			return err
		}
		if n > 0 {
			return perr.WithField(perr.DuplicateKeyf("%s %s is already recorded", sc.Name, v), sc.Name)
		}
	}
	return nil
}

// Get loads one unit
func (s *Svc) Get(ctx context.Context, orgID, id string) (domain.UnitValue, error) {
	return s.Repo.Get(ctx, orgID, id)
}

// Delete removes a unit and gives its count back to the case
func (s *Svc) Delete(ctx context.Context, orgID, id string) error {
	u, err := s.Repo.Get(ctx, orgID, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, orgID, id); err != nil {
		return err
	}
	if err := s.cases.AddUnits(ctx, orgID, u.CaseID, -u.Count); err != nil && !perr.IsCode(err, perr.ErrorCodeNotFound) {
		return err
	}
	s.events.Emit(ctx, eventsdom.Event{
		OrgID:     orgID,
		Kind:      eventsdom.KindUnitRemoved,
		OrderID:   u.OrderID,
		ProductID: u.ProductID,
		CaseID:    u.CaseID,
		Count:     u.Count,
	})
	logger.C(ctx).Info().Str("unit_id", id).Str("case_id", u.CaseID).Int("count", u.Count).Msg("unit removed")
	return nil
}

// List returns units of an order or a case, newest first
func (s *Svc) List(ctx context.Context, orgID string, f domain.Filter, limit int) ([]domain.UnitValue, int64, error) {
	if f.OrderID == "" && f.CaseID == "" {
		return nil, 0, perr.Validationf("orderId or caseId is required")
	}
	return s.Repo.List(ctx, orgID, f, limit)
}

// Progress sums recorded unit counts per order line against the ordered quantity
func (s *Svc) Progress(ctx context.Context, orgID, orderID string) ([]domain.Progress, error) {
	if orderID == "" {
		return nil, perr.WithField(perr.Validationf("orderId is required"), "orderId")
	}
	order, err := s.orders.Get(ctx, orgID, orderID)
	if err != nil {
		return nil, err
	}
	hundred := decimal.NewFromInt(100)
	out := make([]domain.Progress, 0, len(order.OrderItems))
	for _, it := range order.OrderItems {
		sum, err := s.Repo.Recorded(ctx, orgID, order.ID, it.ProductID)
		if err != nil {
			return nil, err
		}
		p := domain.Progress{ProductID: it.ProductID, Recorded: sum.IntPart(), Quantity: it.Quantity}
		if it.Quantity > 0 {
			p.Percent = sum.Mul(hundred).DivRound(decimal.NewFromInt(int64(it.Quantity)), 1).InexactFloat64()
		}
		out = append(out, p)
	}
	return out, nil
}
