package module

import (
	"testing"

	phttp "caseline/internal/platform/net/http"
	kit "caseline/internal/platform/testkit"
)

type minter interface{ Mint() string }

type fixedMinter string

func (f fixedMinter) Mint() string { return string(f) }

type bundle struct {
	Minter minter
	hidden minter
}

type fake struct {
	name  string
	ports any
}

func (f fake) MountRoutes(phttp.Router) {}
func (f fake) Ports() any               { return f.ports }
func (f fake) Name() string             { return f.name }

func TestPortsOf(t *testing.T) {
	cases := []struct {
		name  string
		ports any
		want  string
		ok    bool
	}{
		{"direct", fixedMinter("A-001"), "A-001", true},
		{"struct field", bundle{Minter: fixedMinter("B-001")}, "B-001", true},
		{"pointer to struct", &bundle{Minter: fixedMinter("C-001")}, "C-001", true},
		{"unexported only", bundle{hidden: fixedMinter("x")}, "", false},
		{"nil", nil, "", false},
		{"scalar", 3, "", false},
	}
	for _, tc := range cases {
		got, ok := PortsOf[minter](fake{name: "cases", ports: tc.ports})
		if ok != tc.ok {
			t.Fatalf("%s: ok = %v", tc.name, ok)
		}
		if ok && got.Mint() != tc.want {
			t.Fatalf("%s: got %q", tc.name, got.Mint())
		}
	}
	kit.MustPanic(t, func() { MustPortsOf[minter](fake{name: "orders"}) })
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(fake{name: "products", ports: fixedMinter("P")})
	r.Register(fake{name: "cases", ports: bundle{Minter: fixedMinter("C")}})

	if got := r.Names(); len(got) != 2 || got[0] != "products" || got[1] != "cases" {
		t.Fatalf("names = %v", got)
	}
	if m, ok := Lookup[minter](r, "products"); !ok || m.Mint() != "P" {
		t.Fatalf("lookup products = %v %v", m, ok)
	}
	if _, ok := Lookup[minter](r, "cases"); ok {
		t.Fatalf("bundle should not assert to minter")
	}
	if _, ok := Lookup[bundle](r, "missing"); ok {
		t.Fatalf("missing name found")
	}
	kit.MustPanic(t, func() { r.Register(fake{name: "cases"}) })
}
