package aggregates

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/shiftplan-backend/internal/observability"
)

func TestObservabilityHooksFeedMetrics(t *testing.T) {
	if _, ok := NewObservabilityHooks(nil).(noopHooks); !ok {
		t.Fatalf("nil metrics should yield no-op hooks")
	}

	m := observability.New()
	h := NewObservabilityHooks(m)
	h.ObserveOperation(" Scheduling.Shift.Create ", "success", time.Millisecond)
	h.IncReplay("Scheduling.Shift.Create")
	h.IncRejection("Scheduling.Shift.Create", "out_of_schedule_window")

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("write metrics: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`shiftplan_aggregate_operations_total{operation="Scheduling.Shift.Create",status="success"} 1.000000`,
		`shiftplan_aggregate_tx_replays_total{operation="Scheduling.Shift.Create"} 1.000000`,
		`shiftplan_rejections_total{operation="Scheduling.Shift.Create",code="out_of_schedule_window"} 1.000000`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
