package config

import (
	"testing"
	"time"

	kit "caseline/internal/platform/testkit"
)

func TestPrefixComposesKeys(t *testing.T) {
	api := New().Prefix("CORE_").Prefix("API_")
	if got := api.key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("key() = %q, want %q", got, "CORE_API_PORT")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("SERVICE_PGSQL_")
	t.Setenv("SERVICE_PGSQL_URL", "  postgres://x ")
	if got := c.MustString("URL"); got != "postgres://x" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })

	t.Setenv("SERVICE_PGSQL_BLANK", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("BLANK") })
}

func TestMustIntAndPort(t *testing.T) {
	c := New().Prefix("CORE_API_")
	t.Setenv("CORE_API_WORKERS", " 8 ")
	if got := c.MustInt("WORKERS"); got != 8 {
		t.Fatalf("MustInt = %d, want 8", got)
	}
	t.Setenv("CORE_API_BAD", "x")
	kit.MustPanic(t, func() { _ = c.MustInt("BAD") })

	t.Setenv("CORE_API_PORT", "4000")
	if got := c.MustPort("PORT"); got != ":4000" {
		t.Fatalf("MustPort = %q", got)
	}
	t.Setenv("CORE_API_OOB", "70000")
	kit.MustPanic(t, func() { _ = c.MustPort("OOB") })
}

func TestRequire(t *testing.T) {
	c := New().Prefix("REQ_")
	t.Setenv("REQ_A", "x")
	t.Setenv("REQ_B", "y")
	c.Require("A", "B")
	kit.MustPanic(t, func() { c.Require("A", "C") })
}

func TestMayFallbacks(t *testing.T) {
	c := New().Prefix("M_")

	if got := c.MayString("NONE", "def"); got != "def" {
		t.Fatalf("MayString default = %q", got)
	}
	if got := c.MayInt("NONE", 9); got != 9 {
		t.Fatalf("MayInt default = %d", got)
	}
	t.Setenv("M_INT_BAD", "seven")
	if got := c.MayInt("INT_BAD", 3); got != 3 {
		t.Fatalf("MayInt bad = %d, want 3", got)
	}
	t.Setenv("M_ON", "true")
	if !c.MayBool("ON", false) {
		t.Fatalf("MayBool expected true")
	}
	t.Setenv("M_BOOL_BAD", "perhaps")
	if c.MayBool("BOOL_BAD", false) {
		t.Fatalf("MayBool bad expected default false")
	}
	t.Setenv("M_EVERY", "150ms")
	if got := c.MayDuration("EVERY", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	t.Setenv("M_DUR_BAD", "soon")
	if got := c.MayDuration("DUR_BAD", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration bad = %v", got)
	}
}

func TestMayLocation(t *testing.T) {
	c := New().Prefix("TZ_")
	if got := c.MayLocation("NONE", time.UTC); got != time.UTC {
		t.Fatalf("MayLocation default = %v", got)
	}
	t.Setenv("TZ_ZONE", "UTC")
	if got := c.MayLocation("ZONE", time.Local); got.String() != "UTC" {
		t.Fatalf("MayLocation = %v, want UTC", got)
	}
	t.Setenv("TZ_BAD", "Mars/Olympus")
	if got := c.MayLocation("BAD", time.UTC); got != time.UTC {
		t.Fatalf("MayLocation bad = %v, want default", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	t.Setenv("CSV_VALS", " one, two , ,three ,, ")
	got := c.MayCSV("VALS", nil)
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("MayCSV = %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MayCSV[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	t.Setenv("CSV_EMPTY", " , ,")
	if got := c.MayCSV("EMPTY", []string{"fallback"}); len(got) != 1 || got[0] != "fallback" {
		t.Fatalf("MayCSV all blank = %#v", got)
	}
}

func TestMayTuples(t *testing.T) {
	c := New().Prefix("AUTH_")
	t.Setenv("AUTH_TOKENS", "tok-a:alice:org-1, broken ,tok-b : bob : org-2")
	got := c.MayTuples("TOKENS", 3)
	if len(got) != 2 {
		t.Fatalf("MayTuples len = %d, want 2 (%#v)", len(got), got)
	}
	if got[1][0] != "tok-b" || got[1][1] != "bob" || got[1][2] != "org-2" {
		t.Fatalf("MayTuples trimmed parts = %#v", got[1])
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("E_")
	if got := c.MayEnum("NONE", "memory", "memory", "pgsql", "sqlite"); got != "memory" {
		t.Fatalf("MayEnum default = %q", got)
	}
	t.Setenv("E_BACKEND", "PGSQL")
	if got := c.MayEnum("BACKEND", "memory", "memory", "pgsql", "sqlite"); got != "PGSQL" {
		t.Fatalf("MayEnum = %q", got)
	}
	t.Setenv("E_BAD", "oracle")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "memory", "memory", "pgsql") })
}
