package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_ObservesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/plans/{planId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.CollectAndCount(RequestDuration)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans/0009", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, before+1, testutil.CollectAndCount(RequestDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(RequestDuration, "elevator_http_request_duration_seconds"))
}

func TestCounters(t *testing.T) {
	WebhookEvents.WithLabelValues("payment_intent.succeeded", OutcomeDuplicate).Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(WebhookEvents.WithLabelValues("payment_intent.succeeded", OutcomeDuplicate)))
}
