package repokit

import (
	"context"
	"testing"
	"time"

	"caseline/internal/platform/docstore"
	perr "caseline/internal/platform/errors"
	kit "caseline/internal/platform/testkit"
)

type box struct {
	ID        string    `json:"id,omitempty"`
	OrderID   string    `json:"orderId"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"createdAt"`
}

func newBoxes(t *testing.T) Collection[box] {
	t.Helper()
	db := docstore.NewMemory(docstore.WithPollInterval(5 * time.Millisecond))
	t.Cleanup(func() { _ = db.Close() })
	return MustBind(BindFunc[Collection[box]](func(db docstore.Store) Collection[box] {
		return NewCollection[box](db, "boxes")
	}), db)
}

func TestCollectionCRUD(t *testing.T) {
	ctx := context.Background()
	c := newBoxes(t)

	b, err := c.Create(ctx, "org-1", box{OrderID: "o1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.ID == "" || b.CreatedAt.IsZero() {
		t.Fatalf("metadata not filled: %+v", b)
	}
	if err := c.Update(ctx, "org-1", b.ID, docstore.Fields{"count": docstore.Inc(2)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := c.Get(ctx, "org-1", b.ID)
	if err != nil || got.Count != 2 {
		t.Fatalf("get = %+v, %v", got, err)
	}

	_, err = c.Get(ctx, "org-2", b.ID)
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("other org get = %v", err)
	}
	kit.MustContain(t, err.Error(), "box "+b.ID+" not found")
	if err := c.Update(ctx, "org-1", "nope", docstore.Fields{"count": 1}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("update missing = %v", err)
	}

	if err := c.Delete(ctx, "org-1", b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n, _ := c.Count(ctx, c.Query("org-1")); n != 0 {
		t.Fatalf("count after delete = %d", n)
	}
}

func TestCollectionFindAndFirst(t *testing.T) {
	ctx := context.Background()
	c := newBoxes(t)
	for _, o := range []string{"o1", "o2", "o1"} {
		if _, err := c.Create(ctx, "org-1", box{OrderID: o}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	xs, err := c.Find(ctx, c.Query("org-1").Where("orderId", docstore.Eq, "o1"))
	if err != nil || len(xs) != 2 {
		t.Fatalf("find = %v, %v", xs, err)
	}
	last, ok, err := c.First(ctx, c.Query("org-1").Where("orderId", docstore.Eq, "o1").Order(docstore.FieldCreatedAt, true))
	if err != nil || !ok || last.ID != xs[1].ID {
		t.Fatalf("first = %+v %v %v, want %s", last, ok, err, xs[1].ID)
	}
	if _, ok, _ := c.First(ctx, c.Query("org-1").Where("orderId", docstore.Eq, "o9")); ok {
		t.Fatalf("first on empty result reported a match")
	}
}

func TestCollectionPutInBatch(t *testing.T) {
	ctx := context.Background()
	c := newBoxes(t)
	w, err := c.Put("org-1", "fixed", box{OrderID: "o1", Count: 4})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := c.Store().Batch(ctx, "org-1", []docstore.Write{w}); err != nil {
		t.Fatalf("batch: %v", err)
	}
	if got, err := c.Get(ctx, "org-1", "fixed"); err != nil || got.Count != 4 {
		t.Fatalf("get = %+v, %v", got, err)
	}
}

func TestCollectionWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := newBoxes(t)
	ch, err := c.Watch(ctx, c.Query("org-1"))
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	first := <-ch
	if first.Err != nil || len(first.Items) != 0 {
		t.Fatalf("first snapshot = %+v", first)
	}
	if _, err := c.Create(context.Background(), "org-1", box{OrderID: "o1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	select {
	case s := <-ch:
		if len(s.Items) != 1 || s.Items[0].OrderID != "o1" {
			t.Fatalf("snapshot = %+v", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no snapshot after create")
	}
	cancel()
	for range ch {
	}
}

func TestMustBindNil(t *testing.T) {
	kit.MustPanic(t, func() {
		MustBind(BindFunc[int](func(docstore.Store) int { return 1 }), nil)
	})
}

func TestSingular(t *testing.T) {
	cases := map[string]string{
		"boxes":      "box",
		"cases":      "case",
		"unitValues": "unitValue",
		"matches":    "match",
		"classes":    "class",
		"orders":     "order",
		"s":          "s",
		"unit":       "unit",
	}
	for in, want := range cases {
		if got := singular(in); got != want {
			t.Fatalf("singular(%q) = %q, want %q", in, got, want)
		}
	}
}
