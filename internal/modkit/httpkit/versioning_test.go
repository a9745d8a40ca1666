package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "newsstand/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func newTestRouter() Router {
	return phttp.AdaptChi(chi.NewRouter())
}

func TestMountAPIPrefixesRoutes(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	MountAPI(r, "v1", nil, func(api Router) {
		Get(api, "/ping", func(_ *http.Request) (any, error) {
			return map[string]string{"pong": "true"}, nil
		})
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	r.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/ping = %d, want 200", rec.Code)
	}

	// unprefixed path should not resolve
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.Mux().ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusNotFound {
		t.Fatalf("GET /ping = %d, want 404", rec2.Code)
	}
}

func TestMountAPIAppliesMiddleware(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	seen := false
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			seen = true
			next.ServeHTTP(w, req)
		})
	}

	MountAPI(r, "/v1", []func(http.Handler) http.Handler{mw}, func(api Router) {
		Get(api, "/ok", func(_ *http.Request) (any, error) { return "ok", nil })
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ok", nil)
	r.Mux().ServeHTTP(rec, req)

	if !seen {
		t.Fatalf("scoped middleware not applied")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
