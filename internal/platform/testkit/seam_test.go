package testkit

import "testing"

var openBackend = func() string { return "pgsql" }

func TestSwapRestores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Serial(t)
		Swap(t, &openBackend, func() string { return "memory" })
		if got := openBackend(); got != "memory" {
			t.Fatalf("swap not applied: %q", got)
		}
	})
	if got := openBackend(); got != "pgsql" {
		t.Fatalf("swap not restored: %q", got)
	}
}
