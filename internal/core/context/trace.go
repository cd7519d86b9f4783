package context

import "context"

// TraceContext carries the identifiers that correlate the log lines of one
// request. Populated by the HTTP trace middleware.
type TraceContext struct {
	TraceID   string
	SpanID    string
	RequestID string
}

// LogFields returns the identifiers as logger key-value pairs.
func (t *TraceContext) LogFields() []any {
	return []any{
		"trace_id", t.TraceID,
		"request_id", t.RequestID,
	}
}

type traceContextKey struct{}

// WithTrace adds TraceContext to context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// GetTrace returns TraceContext from context, or nil outside a request.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceContextKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}
