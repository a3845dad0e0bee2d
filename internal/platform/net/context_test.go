package net_test

import (
	"context"
	"testing"

	pnet "caseline/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	base := context.Background()
	cases := []struct {
		name, req, org string
	}{
		{"both", "req-1", "org-1"},
		{"request only", "req-2", ""},
		{"org only", "", "org-3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := pnet.WithRequest(base, tc.req, tc.org)
			if got := pnet.RequestID(ctx); got != tc.req {
				t.Fatalf("RequestID = %q, want %q", got, tc.req)
			}
			if got := pnet.OrgID(ctx); got != tc.org {
				t.Fatalf("OrgID = %q, want %q", got, tc.org)
			}
		})
	}
	if ctx := pnet.WithRequest(base, "", ""); ctx != base {
		t.Fatalf("expected unchanged context when nothing is set")
	}
}

func TestWithUser(t *testing.T) {
	ctx := pnet.WithUser(context.Background(), "alice")
	if got := pnet.UserID(ctx); got != "alice" {
		t.Fatalf("UserID = %q", got)
	}
	if got := pnet.UserID(context.Background()); got != "" {
		t.Fatalf("UserID on bare ctx = %q", got)
	}
}
