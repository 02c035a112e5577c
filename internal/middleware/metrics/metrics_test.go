package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsRoutePatternAndStatus(t *testing.T) {
	m := New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/thread/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/thread/42", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)

	// Labeled with the route pattern, not the concrete path
	count := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/thread/{id}", "404"))
	assert.Equal(t, 1.0, count)
	count = testutil.ToFloat64(m.requests.WithLabelValues("GET", "/thread/42", "404"))
	assert.Zero(t, count)
}

func TestMiddleware_DefaultsToOKWhenHandlerWritesNoHeader(t *testing.T) {
	m := New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	count := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/", "200"))
	assert.Equal(t, 1.0, count)
}

func TestNew_RegistersOnProvidedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = New(reg)

	families, err := reg.Gather()
	require.NoError(t, err)

	// Gather drops metrics with no observations yet; the gauge is
	// always exported.
	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.GetName()
	}
	assert.Contains(t, names, "forum_http_requests_in_flight")
}
