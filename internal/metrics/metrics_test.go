package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/domain"
	"tripplanner/internal/metrics"
)

type stubGenerator struct{ err error }

func (s stubGenerator) Generate(context.Context, domain.GenerationRequest) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "ok", nil
}

func TestInstrumentCountsOutcomes(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry(), nil)

	ok := m.Instrument(stubGenerator{}, "huggingface")
	_, err := ok.Generate(context.Background(), domain.GenerationRequest{})
	require.NoError(t, err)

	failing := m.Instrument(stubGenerator{err: errors.New("boom")}, "huggingface")
	_, _ = failing.Generate(context.Background(), domain.GenerationRequest{})
	slow := m.Instrument(stubGenerator{err: context.DeadlineExceeded}, "huggingface")
	_, _ = slow.Generate(context.Background(), domain.GenerationRequest{})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.InferenceCalls.WithLabelValues("huggingface", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InferenceCalls.WithLabelValues("huggingface", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InferenceCalls.WithLabelValues("huggingface", "timeout")))
}

func TestHandlerExposesSessionsGauge(t *testing.T) {
	live := 3
	m := metrics.New(prometheus.NewRegistry(), func() int { return live })
	m.ObserveRequest("/api/v1/trips", "POST", 201, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "tripplanner_sessions_live 3")
	assert.Contains(t, string(body), `tripplanner_http_requests_total{method="POST",route="/api/v1/trips",status="201"} 1`)
}
