package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAction(t *testing.T) {
	m := NewMetrics("socialite", prometheus.NewRegistry())

	m.ObserveAction("switch_like", "ok")
	m.ObserveAction("switch_like", "ok")
	m.ObserveAction("switch_like", "persistence")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActionCounter.WithLabelValues("switch_like", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActionCounter.WithLabelValues("switch_like", "persistence")))
}

func TestObserveActionNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveAction("x", "ok") })
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := NewMetrics("socialite", prometheus.NewRegistry())
	m.RequestCounter.WithLabelValues("GET", "/health", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "socialite_http_requests_total")
}
