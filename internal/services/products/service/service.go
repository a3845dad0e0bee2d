// Package service contains product workflows
package service

import (
	"context"
	"strings"

	"caseline/internal/core/idtemplate"
	"caseline/internal/core/normalize"
	"caseline/internal/modkit/repokit"
	"caseline/internal/platform/docstore"
	perr "caseline/internal/platform/errors"
	"caseline/internal/platform/logger"
	"caseline/internal/platform/net/http/bind"
	"caseline/internal/services/products/domain"
	"caseline/internal/services/products/repo"
)

// Service defines the service contract for products
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo
}

// New creates a products service
func New(db docstore.Store, binder repokit.Binder[repo.Repo]) *Svc {
	if binder == nil {
		panic("products.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: repokit.MustBind(binder, db)}
}

// Create validates and stores a product. Unset scopes default to order, unit counts to
// one and transforms to NONE
func (s *Svc) Create(ctx context.Context, orgID string, in domain.ProductInput) (domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := bind.Struct(in); err != nil {
		return domain.Product{}, err
	}
	if err := checkSchemas(in); err != nil {
		return domain.Product{}, err
	}
	applyDefaults(&in)

	p, err := s.Repo.Create(ctx, orgID, domain.Product{ProductInput: in})
	if err != nil {
		return domain.Product{}, err
	}
	logger.C(ctx).Info().
		Str("product_id", p.ID).
		Str("pattern", p.CaseIdentifierSchema.Pattern).
		Int("max_size", p.CaseIdentifierSchema.MaxSize).
		Msg("product created")
	return p, nil
}

// Get loads one product
func (s *Svc) Get(ctx context.Context, orgID, id string) (domain.Product, error) {
	return s.Repo.Get(ctx, orgID, id)
}

// List returns up to limit products by name and the total count
func (s *Svc) List(ctx context.Context, orgID string, limit int) ([]domain.Product, int64, error) {
	return s.Repo.List(ctx, orgID, limit)
}

func checkSchemas(in domain.ProductInput) error {
	seen := make(map[string]bool, len(in.UnitIdentifierSchema))
	for i, u := range in.UnitIdentifierSchema {
		if seen[u.Name] {
			return perr.WithField(perr.InvalidArgf("unit identifier %q is declared twice", u.Name), "unitIdentifierSchema")
		}
		seen[u.Name] = true
		if u.Pattern != "" && u.DefaultValue != "" {
			if err := MatchPattern(u, u.DefaultValue); err != nil {
				return perr.WithOp(err, "unitIdentifierSchema["+itoa(i)+"]")
			}
		}
	}
	return nil
}

func applyDefaults(in *domain.ProductInput) {
	if in.CaseIdentifierSchema.Scope == "" {
		in.CaseIdentifierSchema.Scope = domain.ScopeOrder
	}
	for i := range in.UnitIdentifierSchema {
		u := &in.UnitIdentifierSchema[i]
		if u.Count == 0 {
			u.Count = 1
		}
		if u.Transform == "" {
			u.Transform = normalize.CasingNone
		}
		if u.Scope == "" {
			u.Scope = domain.ScopeOrder
		}
	}
}

// ValidPattern reports whether a case identifier pattern can mint identifiers: it must
// not be blank and must contain a date token or a run
func ValidPattern(pattern string) bool {
	if strings.TrimSpace(pattern) == "" {
		return false
	}
	t := idtemplate.Parse(pattern)
	return t.HasRuns() || t.HasDates()
}
