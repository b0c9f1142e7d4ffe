package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"siigosync/internal/domain/sync"
)

const namespace = "siigosync"

// Metrics счетчики проходов синхронизации и запросов к Siigo
// в собственном реестре
type Metrics struct {
	registry *prometheus.Registry

	passesTotal     *prometheus.CounterVec
	itemsTotal      *prometheus.CounterVec
	passDuration    *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		passesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "Sync passes by operation and result.",
		}, []string{"operation", "result"}),
		itemsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pass_items_total",
			Help:      "Items processed by sync passes by outcome.",
		}, []string{"operation", "outcome"}),
		passDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Sync pass duration.",
			Buckets:   []float64{.05, .1, .5, 1, 5, 15, 30, 60, 120, 300},
		}, []string{"operation"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "siigo_requests_total",
			Help:      "Requests sent to the Siigo API by method and status code.",
		}, []string{"method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "siigo_request_duration_seconds",
			Help:      "Siigo API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	m.registry.MustRegister(
		m.passesTotal,
		m.itemsTotal,
		m.passDuration,
		m.requestsTotal,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObservePass учитывает итог прохода
func (m *Metrics) ObservePass(res *sync.Result) {
	if res == nil {
		return
	}

	result := "ok"
	if !res.Success {
		result = "error"
	}

	m.passesTotal.WithLabelValues(res.Operation, result).Inc()
	m.itemsTotal.WithLabelValues(res.Operation, "done").Add(float64(res.Count))
	m.itemsTotal.WithLabelValues(res.Operation, "skipped").Add(float64(res.Skipped))
	m.itemsTotal.WithLabelValues(res.Operation, "failed").Add(float64(res.Failed))
	m.passDuration.WithLabelValues(res.Operation).Observe(res.Duration.Seconds())
}

// ObserveRequest учитывает запрос к Siigo. status 0 - ответа не было.
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	code := "none"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(method, code).Inc()
	m.requestDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry для тестов и дополнительных коллекторов
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
