package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/neurobridge-profiling/internal/platform/logger"
)

const namespace = "profiling"

type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	sessionsCreated    prometheus.Counter
	responsesSubmitted *prometheus.CounterVec
	sessionsCompleted  *prometheus.CounterVec
	primaryScore       prometheus.Histogram
	difficultyChecks   *prometheus.CounterVec
	blueprints         prometheus.Counter
	operationErrors    *prometheus.CounterVec
	notifyFailures     prometheus.Counter
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	v := strings.TrimSpace(os.Getenv("METRICS_ENABLED"))
	if v == "" {
		return false
	}
	return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
}

func Current() *Metrics {
	return instance
}

// Init builds the process-wide metrics once. It returns nil when
// METRICS_ENABLED is off; every Metrics method is nil-safe.
func Init(log *logger.Logger) *Metrics {
	initOnce.Do(func() {
		if !Enabled() {
			return
		}
		m, err := NewMetrics(prometheus.NewRegistry())
		if err != nil {
			log.Warn("metrics init failed (continuing without metrics)", "error", err)
			return
		}
		instance = m
		log.Info("metrics enabled")
	})
	return instance
}

// NewMetrics registers every collector on reg, plus the Go and process
// collectors.
func NewMetrics(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_inflight_requests",
			Help:      "HTTP requests currently being served.",
		}),
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Profiling sessions started.",
		}),
		responsesSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_submitted_total",
			Help:      "Accepted questionnaire answers by module.",
		}, []string{"module"}),
		sessionsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_completed_total",
			Help:      "Completed sessions by primary track and confidence.",
		}, []string{"primary_track", "confidence"}),
		primaryScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "primary_score",
			Help:      "Normalized score of the primary recommendation.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		difficultyChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "difficulty_checks_total",
			Help:      "Difficulty verifications by declared tier and outcome.",
		}, []string{"declared", "realistic"}),
		blueprints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blueprints_generated_total",
			Help:      "Blueprints composed.",
		}),
		operationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_errors_total",
			Help:      "Failed profiling operations by operation and error code.",
		}, []string{"operation", "code"}),
		notifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_notify_failures_total",
			Help:      "Completion events that could not be published.",
		}),
	}
	cs := []prometheus.Collector{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.sessionsCreated, m.responsesSubmitted, m.sessionsCompleted, m.primaryScore,
		m.difficultyChecks, m.blueprints, m.operationErrors, m.notifyFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on addr until ctx is done.
func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) error {
	if m == nil || strings.TrimSpace(addr) == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info("metrics server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) IncSessionCreated() {
	if m == nil {
		return
	}
	m.sessionsCreated.Inc()
}

func (m *Metrics) IncResponse(module string) {
	if m == nil {
		return
	}
	m.responsesSubmitted.WithLabelValues(module).Inc()
}

func (m *Metrics) ObserveCompletion(primaryTrack, confidence string, score float64) {
	if m == nil {
		return
	}
	m.sessionsCompleted.WithLabelValues(primaryTrack, confidence).Inc()
	m.primaryScore.Observe(score)
}

func (m *Metrics) IncDifficultyCheck(declared string, realistic bool) {
	if m == nil {
		return
	}
	m.difficultyChecks.WithLabelValues(declared, strconv.FormatBool(realistic)).Inc()
}

func (m *Metrics) IncBlueprint() {
	if m == nil {
		return
	}
	m.blueprints.Inc()
}

func (m *Metrics) IncOperationError(operation, code string) {
	if m == nil {
		return
	}
	m.operationErrors.WithLabelValues(operation, code).Inc()
}

func (m *Metrics) IncNotifyFailure() {
	if m == nil {
		return
	}
	m.notifyFailures.Inc()
}
