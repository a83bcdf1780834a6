package aggregates

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/observability"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type BaseDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Runner TxRunner
	Hooks  Hooks
	Tracer trace.Tracer
	// TxAttempts bounds how often a write body runs when its transaction hits a
	// serialization failure or deadlock. Zero means DefaultTxAttempts.
	TxAttempts int
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.Tracer == nil {
		d.Tracer = observability.Tracer()
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.TxAttempts <= 0 {
		d.TxAttempts = DefaultTxAttempts
	}
	return d
}

func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = normalizeOp(op)

	ctx, span := deps.Tracer.Start(ctx, op)
	defer span.End()

	err := runTx(ctx, deps.Runner, deps.TxAttempts, fn, func(attempt int, err error) {
		deps.Hooks.IncReplay(op)
		span.AddEvent("aggregate.tx_retry", trace.WithAttributes(attribute.Int("attempt", attempt)))
		deps.Log.Debug("Replaying aggregate write", "op", op, "attempt", attempt, "error", err)
	})
	return finishWrite(span, deps, op, start, err)
}

// failWrite reports a write that failed before its transaction could start.
func failWrite(ctx context.Context, deps BaseDeps, op string, err error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = normalizeOp(op)

	_, span := deps.Tracer.Start(ctx, op)
	defer span.End()
	return finishWrite(span, deps, op, start, err)
}

func finishWrite(span trace.Span, deps BaseDeps, op string, start time.Time, err error) error {
	mapped := MapError(op, err)

	status := "success"
	if mapped != nil {
		status = aggregateErrorStatus(mapped)
		code := domainagg.CodeOf(mapped)
		switch {
		case code == domainagg.CodeConflict:
			deps.Hooks.IncConflict(op)
		case code == domainagg.CodeRetryable:
			deps.Hooks.IncRetry(op)
		case domainagg.IsRuleRejection(code):
			deps.Hooks.IncRejection(op, string(code))
			deps.Log.Debug("Aggregate write rejected", "op", op, "code", code, "error", mapped)
		}
		if !domainagg.IsRuleRejection(code) {
			span.RecordError(mapped)
			span.SetStatus(codes.Error, string(code))
		}
	}
	span.SetAttributes(attribute.String("aggregate.status", status))
	deps.Hooks.ObserveOperation(op, status, time.Since(start))
	return mapped
}

func normalizeOp(op string) string {
	op = strings.TrimSpace(op)
	if op == "" {
		return "aggregate.write"
	}
	return op
}

func aggregateErrorStatus(err error) string {
	if err == nil {
		return "success"
	}
	code := strings.TrimSpace(string(domainagg.CodeOf(err)))
	if code == "" {
		code = strings.TrimSpace(string(domainagg.CodeOf(MapError("aggregate.status", err))))
	}
	if code == "" {
		return "failure"
	}
	return code
}
