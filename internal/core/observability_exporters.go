package core

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// PrometheusMetricsRecorder counts operation outcomes and tracks their latency
// as Prometheus collectors.
type PrometheusMetricsRecorder struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// NewPrometheusMetricsRecorder registers the service collectors on reg under
// namespace. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer, namespace string) (*PrometheusMetricsRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	rec := &PrometheusMetricsRecorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "operations_total",
			Help:      "Service operations by name and outcome.",
		}, []string{"operation", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency, artificial delay excluded.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"operation"}),
	}
	for _, c := range []prometheus.Collector{rec.operations, rec.durations} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register service metrics: %w", err)
		}
	}
	return rec, nil
}

// Observe implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.operations.WithLabelValues(operation, status).Inc()
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

// LogTracer emits one zap entry per finished span.
type LogTracer struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewLogTracer builds a tracer writing to logger at Debug, or Warn for failed spans.
func NewLogTracer(logger *zap.Logger) *LogTracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogTracer{logger: logger.Named("trace"), now: time.Now}
}

// Start implements Tracer.
func (t *LogTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, &logSpan{tracer: t, operation: operation, started: t.now()}
}

type logSpan struct {
	tracer    *LogTracer
	operation string
	started   time.Time
}

func (s *logSpan) End(err error) {
	ended := s.tracer.now()
	fields := []zap.Field{
		zap.String("operation", s.operation),
		zap.Time("started_at", s.started),
		zap.Duration("duration", ended.Sub(s.started)),
	}
	if err != nil {
		s.tracer.logger.Warn("span", append(fields, zap.String("status", "error"), zap.Error(err))...)
		return
	}
	s.tracer.logger.Debug("span", append(fields, zap.String("status", "success"))...)
}
