package ctxutil

import (
	"context"
	"strings"
	"testing"
)

func TestCorrelationRoundTrip(t *testing.T) {
	if GetCorrelation(context.Background()) != nil {
		t.Fatalf("expected no correlation on empty context")
	}
	ctx := WithCorrelation(context.Background(), &Correlation{TraceID: "abc", RequestID: "req-1"})
	c := GetCorrelation(ctx)
	if c == nil || c.TraceID != "abc" || c.RequestID != "req-1" {
		t.Fatalf("unexpected correlation: %+v", c)
	}
	fields := c.LogFields()
	if len(fields) != 4 || fields[0] != "trace_id" || fields[3] != "req-1" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if (&Correlation{RequestID: "r"}).LogFields()[0] != "request_id" {
		t.Fatalf("empty trace id should be skipped")
	}
	var nilC *Correlation
	if nilC.LogFields() != nil {
		t.Fatalf("nil correlation should yield no fields")
	}
}

func TestValidRequestID(t *testing.T) {
	cases := map[string]bool{
		"":                       false,
		"req-1":                  true,
		"3f2c9a1e_b.7":           true,
		"with space":             false,
		"line\nbreak":            false,
		"<script>":               false,
		strings.Repeat("a", 64):  true,
		strings.Repeat("a", 65):  false,
	}
	for id, want := range cases {
		if got := ValidRequestID(id); got != want {
			t.Fatalf("ValidRequestID(%q)=%v want %v", id, got, want)
		}
	}
}
