package aggregates

import "testing"

func TestBoundariesDeclareWrites(t *testing.T) {
	all := []Boundary{OwnerAggregateBoundary, RosterAggregateBoundary, ScheduleAggregateBoundary, ShiftAggregateBoundary}
	seen := map[string]bool{}
	for _, b := range all {
		if b.Name == "" || len(b.Writes) == 0 || b.Locks == "" {
			t.Fatalf("incomplete boundary: %+v", b)
		}
		if seen[b.Name] {
			t.Fatalf("duplicate boundary name %q", b.Name)
		}
		seen[b.Name] = true
	}
	if !ShiftAggregateBoundary.OwnsTable("shift") || ShiftAggregateBoundary.OwnsTable("schedule") {
		t.Fatalf("shift aggregate must write shifts only: %+v", ShiftAggregateBoundary.Writes)
	}
	if ShiftAggregateBoundary.Locks != LockEmployeeDay {
		t.Fatalf("shift placement locks=%s", ShiftAggregateBoundary.Locks)
	}
	if !OwnerAggregateBoundary.OwnsTable("employee") {
		t.Fatalf("owner deletion detaches employees")
	}
}
