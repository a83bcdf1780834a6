package envutil

import (
	"testing"
	"time"
)

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SHIFTPLAN_TEST_INT", "forty")
	if got := Int("SHIFTPLAN_TEST_INT", 7, nil); got != 7 {
		t.Fatalf("Int: want=7 got=%d", got)
	}
	t.Setenv("SHIFTPLAN_TEST_INT", " 12 ")
	if got := Int("SHIFTPLAN_TEST_INT", 7, nil); got != 12 {
		t.Fatalf("Int: want=12 got=%d", got)
	}
}

func TestDurationAcceptsSecondsAndGoSyntax(t *testing.T) {
	t.Setenv("SHIFTPLAN_TEST_TTL", "3600")
	if got := Duration("SHIFTPLAN_TEST_TTL", time.Minute, nil); got != time.Hour {
		t.Fatalf("Duration seconds: got=%s", got)
	}
	t.Setenv("SHIFTPLAN_TEST_TTL", "1m30s")
	if got := Duration("SHIFTPLAN_TEST_TTL", time.Minute, nil); got != 90*time.Second {
		t.Fatalf("Duration go syntax: got=%s", got)
	}
	t.Setenv("SHIFTPLAN_TEST_TTL", "soon")
	if got := Duration("SHIFTPLAN_TEST_TTL", time.Minute, nil); got != time.Minute {
		t.Fatalf("Duration fallback: got=%s", got)
	}
}

func TestBoolAndList(t *testing.T) {
	t.Setenv("SHIFTPLAN_TEST_BOOL", "on")
	if !Bool("SHIFTPLAN_TEST_BOOL", false, nil) {
		t.Fatalf("Bool: expected true")
	}
	t.Setenv("SHIFTPLAN_TEST_LIST", "http://a, ,http://b")
	got := List("SHIFTPLAN_TEST_LIST", nil, nil)
	if len(got) != 2 || got[0] != "http://a" || got[1] != "http://b" {
		t.Fatalf("List: got=%v", got)
	}
	if got := String("SHIFTPLAN_TEST_MISSING", "dflt", nil); got != "dflt" {
		t.Fatalf("String default: got=%q", got)
	}
}

func TestFloat(t *testing.T) {
	t.Setenv("SHIFTPLAN_TEST_RATIO", "0.25")
	if got := Float("SHIFTPLAN_TEST_RATIO", 1, nil); got != 0.25 {
		t.Fatalf("Float: got=%v", got)
	}
	t.Setenv("SHIFTPLAN_TEST_RATIO", "most")
	if got := Float("SHIFTPLAN_TEST_RATIO", 1, nil); got != 1 {
		t.Fatalf("Float fallback: got=%v", got)
	}
}
