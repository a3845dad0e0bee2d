package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"caseline/internal/modkit"
	"caseline/internal/modkit/module"
	perr "caseline/internal/platform/errors"
	"caseline/internal/platform/logger"
	ordersdom "caseline/internal/services/orders/domain"
	ordersmod "caseline/internal/services/orders/module"
	productsdom "caseline/internal/services/products/domain"
	productsmod "caseline/internal/services/products/module"

	"gopkg.in/yaml.v3"
)

// refPrefix marks an order item productId that names a product of the same file
const refPrefix = "@"

// Fixtures is a seed file. Products carry a ref that order items point at with "@ref"
type Fixtures struct {
	Org      string                 `json:"org"`
	Products []ProductFixture       `json:"products"`
	Orders   []ordersdom.OrderInput `json:"orders"`
}

// ProductFixture is a product input plus the ref orders use for it
type ProductFixture struct {
	Ref string `json:"ref"`
	productsdom.ProductInput
}

// Seeded is what a seed created
type Seeded struct {
	Org      string            `json:"org"`
	Products map[string]string `json:"products"`
	Orders   []string          `json:"orders"`
}

// LoadFixtures reads a YAML seed file
func LoadFixtures(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes YAML into Fixtures. Keys follow the JSON API names
// (caseIdentifierSchema, orderItems), so the document goes through encoding/json
// once yaml has produced a generic tree
func ParseFixtures(data []byte) (Fixtures, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return Fixtures{}, fmt.Errorf("failed to parse seed YAML: %w", err)
	}
	js, err := json.Marshal(tree)
	if err != nil {
		return Fixtures{}, fmt.Errorf("seed YAML is not a JSON document: %w", err)
	}
	var fx Fixtures
	if err := json.Unmarshal(js, &fx); err != nil {
		return Fixtures{}, fmt.Errorf("failed to decode seed: %w", err)
	}
	return fx, nil
}

// Seed creates the fixtures' products and then its orders under org, which overrides
// the file's org when set
func Seed(ctx context.Context, deps modkit.Deps, fx Fixtures, org string) (Seeded, error) {
	if org == "" {
		org = fx.Org
	}
	if org == "" {
		return Seeded{}, perr.WithField(perr.Validationf("seed needs an organization"), "org")
	}
	log := logger.Named("seed")

	products := productsmod.New(deps)
	orders := ordersmod.New(deps, modkit.WithPorts(ordersmod.Needs{
		Products: module.MustPortsOf[productsdom.ServicePort](products),
	}))
	psvc := module.MustPortsOf[productsdom.ServicePort](products)
	osvc := module.MustPortsOf[ordersdom.ServicePort](orders)

	out := Seeded{Org: org, Products: map[string]string{}}
	for i, pf := range fx.Products {
		ref := pf.Ref
		if ref == "" {
			ref = pf.Name
		}
		if _, dup := out.Products[ref]; dup {
			return out, perr.WithField(perr.InvalidArgf("products[%d]: ref %q used twice", i, ref), "ref")
		}
		p, err := psvc.Create(ctx, org, pf.ProductInput)
		if err != nil {
			return out, perr.WithOp(err, fmt.Sprintf("seed product %q", ref))
		}
		out.Products[ref] = p.ID
		log.Info().Str("ref", ref).Str("product_id", p.ID).Msg("product seeded")
	}

	for i, in := range fx.Orders {
		for j := range in.OrderItems {
			pid := in.OrderItems[j].ProductID
			if !strings.HasPrefix(pid, refPrefix) {
				continue
			}
			id, ok := out.Products[strings.TrimPrefix(pid, refPrefix)]
			if !ok {
				return out, perr.WithField(perr.InvalidArgf("orders[%d]: unknown product ref %q", i, pid), "productId")
			}
			in.OrderItems[j].ProductID = id
		}
		o, err := osvc.Create(ctx, org, in)
		if err != nil {
			return out, perr.WithOp(err, fmt.Sprintf("seed order %d", i))
		}
		out.Orders = append(out.Orders, o.ID)
		log.Info().Str("order_id", o.ID).Int("items", len(o.OrderItems)).Msg("order seeded")
	}
	return out, nil
}
