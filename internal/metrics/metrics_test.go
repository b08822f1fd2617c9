package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	c := NewCollector()
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
	}

	got := testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/items/{id}", "418"))
	if got != 2 {
		t.Errorf("requests = %v, want 2", got)
	}
}

func TestCollectors_Independent(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	a.ObserveLookup("postal", "ok", 10*time.Millisecond)
	if testutil.ToFloat64(b.Lookups.WithLabelValues("postal", "ok")) != 0 {
		t.Error("collectors share state")
	}

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `hitung_lookups_total{outcome="ok",service="postal"} 1`) {
		t.Errorf("exposition missing lookup counter:\n%s", rec.Body.String())
	}
}
