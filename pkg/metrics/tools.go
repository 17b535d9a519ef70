package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ToolMetrics records invocation metadata for the agent tool endpoints.
type ToolMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewToolMetrics registers the tool metrics on the provided registerer.
func NewToolMetrics(reg prometheus.Registerer) *ToolMetrics {
	if reg == nil {
		return &ToolMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tool_duration_seconds",
		Help:    "Duration of tool invocations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tool_success",
		Help: "Successful tool invocations.",
	}, []string{"tool"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tool_failure",
		Help: "Failed tool invocations.",
	}, []string{"tool", "code"})
	reg.MustRegister(duration, success, failure)
	return &ToolMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named tool.
func (m *ToolMetrics) ObserveDuration(tool string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(tool)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named tool.
func (m *ToolMetrics) IncSuccess(tool string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(tool)).Inc()
}

// IncFailure increments the failure counter for the named tool and error code.
func (m *ToolMetrics) IncFailure(tool, code string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(tool), normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
