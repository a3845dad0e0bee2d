package strings

import (
	"testing"

	kit "caseline/internal/platform/testkit"
)

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"orders":    "/orders",
		"/orders/":  "/orders",
		" //cases ": "/cases",
		"/a/b":      "/a/b",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { MustPrefix(" / ") })
}

func TestMustString(t *testing.T) {
	if MustString("cases", "name") != "cases" {
		t.Fatalf("value not returned")
	}
	kit.MustPanic(t, func() { MustString("  ", "name") })
}
