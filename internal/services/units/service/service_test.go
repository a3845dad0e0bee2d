package service

import (
	"context"
	"testing"
	"time"

	"caseline/internal/core/idtemplate"
	"caseline/internal/platform/docstore"
	perr "caseline/internal/platform/errors"
	"caseline/internal/platform/metrics"
	kit "caseline/internal/platform/testkit"
	casesdom "caseline/internal/services/cases/domain"
	casesrepo "caseline/internal/services/cases/repo"
	casessvc "caseline/internal/services/cases/service"
	ordersdom "caseline/internal/services/orders/domain"
	productsdom "caseline/internal/services/products/domain"
	"caseline/internal/services/units/domain"
	"caseline/internal/services/units/repo"
)

var t0 = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

type fakeProducts map[string]productsdom.Product

func (f fakeProducts) Get(_ context.Context, _, id string) (productsdom.Product, error) {
	p, ok := f[id]
	if !ok {
		return productsdom.Product{}, perr.NotFoundf("product %s not found", id)
	}
	return p, nil
}

type fakeOrders map[string]ordersdom.Order

func (f fakeOrders) Get(_ context.Context, _, id string) (ordersdom.Order, error) {
	o, ok := f[id]
	if !ok {
		return ordersdom.Order{}, perr.NotFoundf("order %s not found", id)
	}
	return o, nil
}

func widget(autoGen bool) productsdom.Product {
	p := productsdom.Product{ID: "p1"}
	p.Name = "Widget"
	p.CaseIdentifierSchema = productsdom.CaseSchema{Name: "case", Pattern: "C-###", MaxSize: 3, AutoGen: autoGen}
	p.UnitIdentifierSchema = []productsdom.UnitSchema{
		{Name: "serial", Pattern: `^SN[0-9]{4}$`, Transform: "UPPERCASE", Unique: true, Scope: productsdom.ScopeOrder},
		{Name: "lot", DefaultValue: "L1"},
	}
	return p
}

func orders() fakeOrders {
	return fakeOrders{
		"o1": {ID: "o1", Status: ordersdom.StatusConfirmed, OrderItems: []ordersdom.Item{{ProductID: "p1", Quantity: 8}}},
		"o2": {ID: "o2", Status: ordersdom.StatusConfirmed, OrderItems: []ordersdom.Item{{ProductID: "p1", Quantity: 2}}},
		"o3": {ID: "o3", Status: ordersdom.StatusCompleted, OrderItems: []ordersdom.Item{{ProductID: "p1", Quantity: 2}}},
	}
}

type fixture struct {
	svc   *Svc
	cases *casessvc.Svc
}

func newFixture(t *testing.T, p productsdom.Product) fixture {
	t.Helper()
	db := docstore.NewMemory()
	t.Cleanup(func() { _ = db.Close() })
	products := fakeProducts{p.ID: p}
	os := orders()
	m := metrics.New()
	cases := casessvc.New(db, casesrepo.NewDocs(), idtemplate.NewGenerator(kit.Clock(t0)), products, os, casessvc.WithMetrics(m))
	return fixture{svc: New(db, repo.NewDocs(), products, os, cases, WithMetrics(m)), cases: cases}
}

func unit(order, serial string) domain.UnitInput {
	return domain.UnitInput{OrderID: order, ProductID: "p1", IDs: map[string]string{"serial": serial}}
}

func TestRecordAutoGenFillsAndMints(t *testing.T) {
	f := newFixture(t, widget(true))
	ctx := context.Background()

	var last domain.Recorded
	for i, sn := range []string{"sn0001", "sn0002", "sn0003"} {
		r, err := f.svc.Record(ctx, "org1", unit("o1", sn))
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		last = r
	}
	if last.Unit.IDs["serial"] != "SN0003" || last.Unit.IDs["lot"] != "L1" {
		t.Fatalf("ids = %v", last.Unit.IDs)
	}
	if last.Case.CaseID != "C-001" || last.Case.Count != 3 || last.Case.State != casesdom.StateFull {
		t.Fatalf("case = %+v", last.Case)
	}
	if last.Next == nil || last.Next.CaseID != "C-002" || last.Next.State != casesdom.StateOpen {
		t.Fatalf("next = %+v", last.Next)
	}

	r, err := f.svc.Record(ctx, "org1", unit("o1", "SN0004"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Case.CaseID != "C-002" || r.Next != nil {
		t.Fatalf("fourth unit went to %+v", r.Case)
	}

	stored, err := f.cases.Get(ctx, "org1", last.Case.ID)
	if err != nil || stored.Count != 3 {
		t.Fatalf("stored count = %d %v", stored.Count, err)
	}
}

func TestRecordWithoutAutoGenNeedsOpenCase(t *testing.T) {
	f := newFixture(t, widget(false))
	ctx := context.Background()

	if _, err := f.svc.Record(ctx, "org1", unit("o1", "SN0001")); !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("err = %v", err)
	}
	c, err := f.cases.MintNext(ctx, "org1", "o1", "p1")
	if err != nil {
		t.Fatal(err)
	}
	in := unit("o1", "SN0001")
	in.Count = 3
	r, err := f.svc.Record(ctx, "org1", in)
	if err != nil {
		t.Fatal(err)
	}
	if r.Case.ID != c.ID || r.Next != nil || r.Case.State != casesdom.StateFull {
		t.Fatalf("recorded = %+v", r)
	}
	if _, err := f.svc.Record(ctx, "org1", unit("o1", "SN0002")); !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("full case without autoGen: %v", err)
	}
}

func TestRecordRejects(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		in    domain.UnitInput
		code  perr.ErrorCode
		field string
	}{
		{"bad serial", unit("o1", "XX1"), perr.ErrorCodeValidation, "serial"},
		{"missing unique", domain.UnitInput{OrderID: "o1", ProductID: "p1"}, perr.ErrorCodeValidation, "serial"},
		{"unknown id", domain.UnitInput{OrderID: "o1", ProductID: "p1", IDs: map[string]string{"serial": "SN1111", "color": "red"}}, perr.ErrorCodeInvalidArgument, "ids"},
		{"too many", domain.UnitInput{OrderID: "o1", ProductID: "p1", IDs: map[string]string{"serial": "SN1111"}, Count: 4}, perr.ErrorCodeInvalidArgument, "count"},
		{"product not ordered", domain.UnitInput{OrderID: "o1", ProductID: "p9"}, perr.ErrorCodeInvalidArgument, "productId"},
		{"completed order", unit("o3", "SN1111"), perr.ErrorCodeConflict, ""},
		{"unknown order", unit("o9", "SN1111"), perr.ErrorCodeNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, widget(true))
			_, err := f.svc.Record(ctx, "org1", tt.in)
			if !perr.IsCode(err, tt.code) {
				t.Fatalf("err = %v, want %v", err, tt.code)
			}
			if e, ok := perr.As(err); ok && tt.field != "" && e.Field() != tt.field {
				t.Fatalf("field = %q, want %q", e.Field(), tt.field)
			}
		})
	}
}

func TestRecordUniqueScopes(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, widget(true))
	if _, err := f.svc.Record(ctx, "org1", unit("o1", "SN0001")); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Record(ctx, "org1", unit("o1", "sn0001")); !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("same order duplicate: %v", err)
	}
	if _, err := f.svc.Record(ctx, "org1", unit("o2", "SN0001")); err != nil {
		t.Fatalf("order scope allows another order: %v", err)
	}
	if _, err := f.svc.Record(ctx, "org2", unit("o1", "SN0001")); err != nil {
		t.Fatalf("other tenant: %v", err)
	}

	p := widget(true)
	p.UnitIdentifierSchema[0].Scope = productsdom.ScopeOrganization
	g := newFixture(t, p)
	if _, err := g.svc.Record(ctx, "org1", unit("o1", "SN0001")); err != nil {
		t.Fatal(err)
	}
	if _, err := g.svc.Record(ctx, "org1", unit("o2", "SN0001")); !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("organization scope: %v", err)
	}
}

func TestRecordIntoExplicitCase(t *testing.T) {
	f := newFixture(t, widget(false))
	ctx := context.Background()
	c, err := f.cases.MintNext(ctx, "org1", "o1", "p1")
	if err != nil {
		t.Fatal(err)
	}
	other, err := f.cases.MintNext(ctx, "org1", "o2", "p1")
	if err != nil {
		t.Fatal(err)
	}

	in := unit("o1", "SN0001")
	in.CaseID = c.ID
	if _, err := f.svc.Record(ctx, "org1", in); err != nil {
		t.Fatal(err)
	}
	in = unit("o1", "SN0002")
	in.CaseID = other.ID
	if _, err := f.svc.Record(ctx, "org1", in); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("case of another order: %v", err)
	}
}

func TestDeleteGivesCountBack(t *testing.T) {
	f := newFixture(t, widget(true))
	ctx := context.Background()
	in := unit("o1", "SN0001")
	in.Count = 2
	r, err := f.svc.Record(ctx, "org1", in)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.svc.Delete(ctx, "org1", r.Unit.ID); err != nil {
		t.Fatal(err)
	}
	c, err := f.cases.Get(ctx, "org1", r.Case.ID)
	if err != nil || c.Count != 0 {
		t.Fatalf("case count = %d %v", c.Count, err)
	}
	if _, err := f.svc.Get(ctx, "org1", r.Unit.ID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("unit still there: %v", err)
	}
	if err := f.svc.Delete(ctx, "org1", r.Unit.ID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestListAndProgress(t *testing.T) {
	f := newFixture(t, widget(true))
	ctx := context.Background()
	for i, sn := range []string{"SN0001", "SN0002", "SN0003"} {
		in := unit("o1", sn)
		in.Count = 1 + i%2
		if _, err := f.svc.Record(ctx, "org1", in); err != nil {
			t.Fatalf("record %s: %v", sn, err)
		}
	}

	items, total, err := f.svc.List(ctx, "org1", domain.Filter{OrderID: "o1"}, 2)
	if err != nil || total != 3 || len(items) != 2 {
		t.Fatalf("list = %d/%d %v", len(items), total, err)
	}
	if items[0].IDs["serial"] != "SN0003" {
		t.Fatalf("newest first, got %v", items[0].IDs)
	}
	if _, _, err := f.svc.List(ctx, "org1", domain.Filter{}, 10); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("empty filter: %v", err)
	}

	got, err := f.svc.Progress(ctx, "org1", "o1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Recorded != 4 || got[0].Quantity != 8 || got[0].Percent != 50 {
		t.Fatalf("progress = %+v", got)
	}
	if _, err := f.svc.Progress(ctx, "org1", ""); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("progress without order: %v", err)
	}
}

func TestIdentifiersDefaultsAndTransform(t *testing.T) {
	schemas := []productsdom.UnitSchema{
		{Name: "serial", Transform: "LOWERCASE"},
		{Name: "lot", DefaultValue: "l-7", Transform: "UPPERCASE"},
		{Name: "note"},
	}
	got, err := identifiers(schemas, map[string]string{"serial": "  ABC\u200b\r\n", "lot": " "})
	if err != nil {
		t.Fatal(err)
	}
	if got["serial"] != "abc" || got["lot"] != "L-7" {
		t.Fatalf("ids = %v", got)
	}
	if _, ok := got["note"]; ok {
		t.Fatal("empty optional id should be left out")
	}
}
