// Package metrics объявляет Prometheus-метрики сервиса и HTTP middleware для замера длительности запросов.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения метки outcome.
const (
	OutcomeCreated          = "created"
	OutcomeDuplicate        = "duplicate"
	OutcomeIgnored          = "ignored"
	OutcomePermanentFailure = "permanent_failure"
	OutcomeTransientFailure = "transient_failure"
	OutcomeConflict         = "conflict"
	OutcomeInvalid          = "invalid"
	OutcomeSuccess          = "success"
	OutcomeFailure          = "failure"
	OutcomeDropped          = "dropped"
)

var (
	// WebhookEvents события платёжного провайдера по типу и результату обработки.
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elevator_webhook_events_total",
		Help: "Payment webhook events by type and outcome.",
	}, []string{"type", "outcome"})

	// Forwards доставки подписок во внешнюю таблицу.
	Forwards = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elevator_forward_total",
		Help: "Subscription forwards to the spreadsheet sink by outcome.",
	}, []string{"outcome"})

	// FreeActivations попытки активации бесплатного тарифа.
	FreeActivations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "elevator_free_activations_total",
		Help: "Free plan activation attempts by outcome.",
	}, []string{"outcome"})

	// RequestDuration длительность HTTP-запросов.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "elevator_http_request_duration_seconds",
		Help:    "HTTP request duration by route, method and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

// Middleware замеряет длительность запроса. Маршрут берётся из шаблона chi, чтобы не плодить метки.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RequestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
