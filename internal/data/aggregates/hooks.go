package aggregates

import (
	"strings"
	"time"

	"github.com/yungbote/shiftplan-backend/internal/observability"
)

// Hooks receives the outcome of every aggregate write.
type Hooks interface {
	ObserveOperation(name, status string, dur time.Duration)
	IncConflict(name string)
	// IncRetry counts writes that gave up with a retryable error.
	IncRetry(name string)
	// IncReplay counts transaction bodies run again after a serialization failure.
	IncReplay(name string)
	// IncRejection counts deterministic business-rule rejections by code.
	IncRejection(name, code string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConflict(string)                             {}
func (noopHooks) IncRetry(string)                                {}
func (noopHooks) IncReplay(string)                               {}
func (noopHooks) IncRejection(string, string)                    {}

// metricsHooks forwards aggregate outcomes to the process metrics.
type metricsHooks struct {
	metrics *observability.Metrics
}

// NewObservabilityHooks returns hooks that feed m, or no-op hooks when metrics are disabled.
func NewObservabilityHooks(m *observability.Metrics) Hooks {
	if m == nil {
		return noopHooks{}
	}
	return metricsHooks{metrics: m}
}

func (h metricsHooks) ObserveOperation(name, status string, dur time.Duration) {
	h.metrics.ObserveAggregateOperation(strings.TrimSpace(name), strings.TrimSpace(status), dur)
}

func (h metricsHooks) IncConflict(name string) {
	h.metrics.IncAggregateConflict(strings.TrimSpace(name))
}

func (h metricsHooks) IncRetry(name string) {
	h.metrics.IncAggregateRetry(strings.TrimSpace(name))
}

func (h metricsHooks) IncReplay(name string) {
	h.metrics.IncAggregateReplay(strings.TrimSpace(name))
}

func (h metricsHooks) IncRejection(name, code string) {
	h.metrics.IncRejection(strings.TrimSpace(name), code)
}
