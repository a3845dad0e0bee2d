// Package service contains order and customer workflows
package service

import (
	"context"
	"strings"
	"time"

	"caseline/internal/modkit/repokit"
	"caseline/internal/platform/docstore"
	perr "caseline/internal/platform/errors"
	"caseline/internal/platform/logger"
	"caseline/internal/platform/net/http/bind"
	ptime "caseline/internal/platform/time"
	"caseline/internal/services/orders/domain"
	"caseline/internal/services/orders/repo"
	productsdom "caseline/internal/services/products/domain"

	"github.com/google/uuid"
)

// Service defines the service contract for orders
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo     repo.Repo
	products productsdom.Reader
	now      func() time.Time
	newID    func() string
}

// New creates an orders service. products resolves order lines; now stamps orderedDate
// when the caller leaves it out
func New(db docstore.Store, binder repokit.Binder[repo.Repo], products productsdom.Reader, now func() time.Time) *Svc {
	if binder == nil {
		panic("orders.Service requires a non nil Repo binder")
	}
	if products == nil {
		panic("orders.Service requires a products reader")
	}
	if now == nil {
		now = time.Now
	}
	return &Svc{Repo: repokit.MustBind(binder, db), products: products, now: now, newID: uuid.NewString}
}

// Create stores a pending order. Every line must name a distinct existing product. With
// an inline customer the customer and the order are written in one batch
func (s *Svc) Create(ctx context.Context, orgID string, in domain.OrderInput) (domain.Order, error) {
	if err := bind.Struct(in); err != nil {
		return domain.Order{}, err
	}
	if err := s.checkItems(ctx, orgID, in.OrderItems); err != nil {
		return domain.Order{}, err
	}

	o := domain.Order{
		CustomerID:    in.CustomerID,
		IDs:           in.IDs,
		Documents:     in.Documents,
		OrderItems:    in.OrderItems,
		Status:        domain.StatusPending,
		DueDate:       in.DueDate,
		OrderedDate:   in.OrderedDate,
		ShipToAddress: strings.TrimSpace(in.ShipToAddress),
	}
	if o.OrderedDate == nil {
		o.OrderedDate = ptime.Ptr(s.now().UTC())
	}
	if o.DueDate != nil && o.DueDate.Before(*o.OrderedDate) {
		return domain.Order{}, perr.WithField(perr.InvalidArgf("due date is before the order date"), "dueDate")
	}

	log := logger.C(ctx)
	if in.Customer != nil {
		c := *in.Customer
		c.ID = s.newID()
		c.Name = strings.TrimSpace(c.Name)
		o.ID, o.CustomerID = s.newID(), c.ID
		if o.ShipToAddress == "" {
			o.ShipToAddress = c.Address
		}
		out, err := s.Repo.CreateWithCustomer(ctx, orgID, o, c)
		if err != nil {
			return domain.Order{}, err
		}
		log.Info().Str("order_id", out.ID).Str("customer_id", c.ID).Msg("order created with new customer")
		return out, nil
	}

	if _, err := s.Repo.GetCustomer(ctx, orgID, in.CustomerID); err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Order{}, perr.WithField(perr.InvalidArgf("customer %s does not exist", in.CustomerID), "customerId")
		}
		return domain.Order{}, err
	}
	out, err := s.Repo.Create(ctx, orgID, o)
	if err != nil {
		return domain.Order{}, err
	}
	log.Info().Str("order_id", out.ID).Int("items", len(out.OrderItems)).Msg("order created")
	return out, nil
}

func (s *Svc) checkItems(ctx context.Context, orgID string, items []domain.Item) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it.ProductID] {
			return perr.WithField(perr.InvalidArgf("product %s is ordered twice", it.ProductID), "orderItems")
		}
		seen[it.ProductID] = true
		if _, err := s.products.Get(ctx, orgID, it.ProductID); err != nil {
			if perr.IsCode(err, perr.ErrorCodeNotFound) {
				return perr.WithField(perr.InvalidArgf("product %s does not exist", it.ProductID), "orderItems")
			}
			return err
		}
	}
	return nil
}

// Get loads one order
func (s *Svc) Get(ctx context.Context, orgID, id string) (domain.Order, error) {
	return s.Repo.Get(ctx, orgID, id)
}

// List returns the newest orders matching f and the total count
func (s *Svc) List(ctx context.Context, orgID string, f domain.Filter, limit int) ([]domain.Order, int64, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, perr.WithField(perr.Validationf("unknown status %q", f.Status), "status")
	}
	return s.Repo.List(ctx, orgID, f, limit)
}

// SetStatus moves an order to st. Cancelled and completed orders are final
func (s *Svc) SetStatus(ctx context.Context, orgID, id string, st domain.Status) (domain.Order, error) {
	if !st.Valid() {
		return domain.Order{}, perr.WithField(perr.Validationf("unknown status %q", st), "status")
	}
	cur, err := s.Repo.Get(ctx, orgID, id)
	if err != nil {
		return domain.Order{}, err
	}
	if cur.Status == st {
		return cur, nil
	}
	if cur.Status.Terminal() {
		return domain.Order{}, perr.Conflictf("order %s is %s", id, cur.Status)
	}
	if err := s.Repo.SetStatus(ctx, orgID, id, st); err != nil {
		return domain.Order{}, err
	}
	logger.C(ctx).Info().Str("order_id", id).Str("from", string(cur.Status)).Str("to", string(st)).Msg("order status changed")
	return s.Repo.Get(ctx, orgID, id)
}

// CreateCustomer stores a customer
func (s *Svc) CreateCustomer(ctx context.Context, orgID string, c domain.Customer) (domain.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := bind.Struct(c); err != nil {
		return domain.Customer{}, err
	}
	return s.Repo.CreateCustomer(ctx, orgID, c)
}

// ListCustomers returns customers by name and the total count
func (s *Svc) ListCustomers(ctx context.Context, orgID string, limit int) ([]domain.Customer, int64, error) {
	return s.Repo.ListCustomers(ctx, orgID, limit)
}
