package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels used by the checklist counters.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultStale   = "stale"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	finalized       prometheus.Counter
	exports         *prometheus.CounterVec
	evidence        *prometheus.CounterVec
	historySize     prometheus.Gauge
	activeSessions  prometheus.Gauge
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	finalized := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checklist_finalized_total",
		Help: "Checklists finalized and recorded in history",
	})

	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checklist_exports_total",
		Help: "Rendered checklist documents by format and result",
	}, []string{"format", "result"})

	evidence := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checklist_evidence_total",
		Help: "Evidence uploads by result",
	}, []string{"result"})

	historySize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "checklist_history_size",
		Help: "Snapshots currently kept in history",
	})

	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "checklist_sessions_active",
		Help: "Checklist sessions held in memory",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, finalized, exports, evidence, historySize, activeSessions, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		finalized:       finalized,
		exports:         exports,
		evidence:        evidence,
		historySize:     historySize,
		activeSessions:  activeSessions,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordFinalize counts a finalized checklist.
func (m *MetricsService) RecordFinalize() {
	if m == nil {
		return
	}
	m.finalized.Inc()
}

// RecordExport counts a rendered document.
func (m *MetricsService) RecordExport(format string, err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	m.exports.WithLabelValues(format, result).Inc()
}

// RecordEvidence counts an evidence upload outcome.
func (m *MetricsService) RecordEvidence(result string) {
	if m == nil {
		return
	}
	m.evidence.WithLabelValues(result).Inc()
}

// SetHistorySize publishes the current history length.
func (m *MetricsService) SetHistorySize(n int) {
	if m == nil {
		return
	}
	m.historySize.Set(float64(n))
}

// SetActiveSessions publishes the number of in-memory sessions.
func (m *MetricsService) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}
