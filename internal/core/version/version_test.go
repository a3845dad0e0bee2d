package version

import (
	"testing"

	kit "caseline/internal/platform/testkit"
)

func TestInfo(t *testing.T) {
	kit.Swap(t, &version, "v1.2.3")
	kit.Swap(t, &commit, "abc123")

	got := Info("caseline-api")
	if got.Service != "caseline-api" || got.Version != "v1.2.3" || got.Commit != "abc123" || got.BuiltAt != "unknown" {
		t.Fatalf("info = %+v", got)
	}
}
