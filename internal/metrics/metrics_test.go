package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	before := testutil.ToFloat64(operations.WithLabelValues("addActivity", OutcomeCommitted))
	ObserveOperation("addActivity", OutcomeCommitted, 3*time.Millisecond)
	after := testutil.ToFloat64(operations.WithLabelValues("addActivity", OutcomeCommitted))
	assert.Equal(t, before+1, after)
}

func TestHandler(t *testing.T) {
	EventSpawned()
	SetSubscribers(2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "velorace_community_events_spawned_total")
	assert.Contains(t, rec.Body.String(), "velorace_engine_subscribers 2")
}
