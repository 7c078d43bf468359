// AngelaMos | 2026
// metrics_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	m := NewMetrics()

	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/ledger/entries/{id}", okHandler)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ledger/entries/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body,
		`drycleaning_http_requests_total{method="GET",route="/ledger/entries/{id}",status="200"} 3`)
	assert.Contains(t, body, `route="unmatched"`)
	assert.NotContains(t, body, `/ledger/entries/a`)
}

func TestMetrics_RegisterDomainCollectors(t *testing.T) {
	m := NewMetrics()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "drycleaning_test_events_total",
		Help: "test",
	})
	m.Register(counter)
	counter.Add(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Contains(t, rec.Body.String(), "drycleaning_test_events_total 2")
}
