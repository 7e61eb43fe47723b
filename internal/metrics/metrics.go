// Package metrics содержит счётчики Prometheus для HTTP-слоя,
// выдачи подписок и фоновой очистки истёкших подписок.
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

// Metrics набор коллекторов сервиса. Методы безопасно вызывать у nil.
type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	grants         *prometheus.CounterVec
	sweepRuns      *prometheus.CounterVec
	sweepRevoked   prometheus.Counter
	guardDenials   *prometheus.CounterVec
	paymentIntents *prometheus.CounterVec
}

// New регистрирует коллекторы в reg. Для глобального реестра передайте prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "code"}),
		grants: f.NewCounterVec(prometheus.CounterOpts{
			Name: "subscription_grants_total",
			Help: "Subscription grants by plan and result.",
		}, []string{"period", "result"}),
		sweepRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "subscription_sweep_runs_total",
			Help: "Expiration sweep passes by result.",
		}, []string{"result"}),
		sweepRevoked: f.NewCounter(prometheus.CounterOpts{
			Name: "subscription_sweep_revoked_total",
			Help: "Subscriptions reset by the expiration sweep.",
		}),
		guardDenials: f.NewCounterVec(prometheus.CounterOpts{
			Name: "access_denials_total",
			Help: "Requests rejected by access guards.",
		}, []string{"status"}),
		paymentIntents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_intents_total",
			Help: "Payment intents requested from the provider by result.",
		}, []string{"result"}),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveGrant учитывает попытку выдачи подписки.
func (m *Metrics) ObserveGrant(period string, err error) {
	if m == nil {
		return
	}
	m.grants.WithLabelValues(period, result(err)).Inc()
}

// ObserveSweep учитывает проход очистки и число сброшенных подписок.
func (m *Metrics) ObserveSweep(revoked int, err error) {
	if m == nil {
		return
	}
	m.sweepRuns.WithLabelValues(result(err)).Inc()
	m.sweepRevoked.Add(float64(revoked))
}

// ObserveDenial учитывает отказ в доступе с указанным HTTP-статусом.
func (m *Metrics) ObserveDenial(status int) {
	if m == nil {
		return
	}
	m.guardDenials.WithLabelValues(strconv.Itoa(status)).Inc()
}

// ObservePaymentIntent учитывает обращение к платёжному провайдеру.
func (m *Metrics) ObservePaymentIntent(err error) {
	if m == nil {
		return
	}
	m.paymentIntents.WithLabelValues(result(err)).Inc()
}

// Middleware считает запросы и их длительность по шаблону маршрута.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		code := strconv.Itoa(status)
		m.httpRequests.WithLabelValues(r.Method, path, code).Inc()
		m.httpDuration.WithLabelValues(r.Method, path, code).Observe(time.Since(start).Seconds())
	})
}
