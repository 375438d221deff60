package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation. Every method is
// nil-safe so metrics stay optional everywhere they are wired.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	checkIns        *prometheus.CounterVec
	studyMinutes    prometheus.Counter
	helpMessages    prometheus.Counter
}

// NewMetricsService registers the core Prometheus collectors.
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

	checkIns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emotion_checkins_total",
		Help: "Total classroom emotion check-ins",
	}, []string{"emotion"})

	studyMinutes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "study_minutes_total",
		Help: "Total study minutes recorded across all users",
	})

	helpMessages := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "help_messages_total",
		Help: "Total anonymous help messages posted",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, checkIns, studyMinutes, helpMessages, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		checkIns:        checkIns,
		studyMinutes:    studyMinutes,
		helpMessages:    helpMessages,
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

// ObserveHTTPRequest records per-route request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// CountCheckIn increments the per-emotion check-in counter.
func (m *MetricsService) CountCheckIn(emotion string) {
	if m == nil {
		return
	}
	m.checkIns.WithLabelValues(emotion).Inc()
}

// AddStudyMinutes adds recorded study minutes to the running total.
func (m *MetricsService) AddStudyMinutes(minutes int) {
	if m == nil || minutes <= 0 {
		return
	}
	m.studyMinutes.Add(float64(minutes))
}

// CountHelpMessage increments the help message counter.
func (m *MetricsService) CountHelpMessage() {
	if m == nil {
		return
	}
	m.helpMessages.Inc()
}
