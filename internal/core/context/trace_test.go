package context

import (
	"context"
	"testing"
)

func TestTraceRoundTrip(t *testing.T) {
	trace := &TraceContext{TraceID: "t-1", SpanID: "s-1", RequestID: "r-1"}
	ctx := WithTrace(context.Background(), trace)

	if got := GetTrace(ctx); got != trace {
		t.Errorf("GetTrace = %+v, want the stored trace", got)
	}
	if got := GetTrace(context.Background()); got != nil {
		t.Errorf("GetTrace on bare context = %+v, want nil", got)
	}
}

func TestTraceLogFields(t *testing.T) {
	trace := &TraceContext{TraceID: "t-1", RequestID: "r-1"}
	fields := trace.LogFields()

	want := []any{"trace_id", "t-1", "request_id", "r-1"}
	if len(fields) != len(want) {
		t.Fatalf("len = %d, want %d", len(fields), len(want))
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("fields[%d] = %v, want %v", i, fields[i], want[i])
		}
	}
}
