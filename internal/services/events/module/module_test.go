package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	modkit "caseline/internal/modkit"
	"caseline/internal/platform/config"
	pnet "caseline/internal/platform/net"
	phttp "caseline/internal/platform/net/http"
	"caseline/internal/services/events/domain"
)

func TestDisabledWithoutClickhouse(t *testing.T) {
	m := New(context.Background(), modkit.Deps{Cfg: config.New()})
	if _, ok := m.Sink().(domain.Nop); !ok {
		t.Fatalf("sink = %T, want Nop", m.Sink())
	}

	r := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(r))
	req := httptest.NewRequest(http.MethodGet, "/events?orderId=o1", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "", "org1"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d", rr.Code)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := m.Run(ctx); err == nil {
		t.Fatal("Run should return the context error")
	}
}
