package ctxutil

import "context"

type correlationKey struct{}

// MaxRequestIDLength caps client supplied request IDs echoed into logs and headers.
const MaxRequestIDLength = 64

// Correlation ties log lines of one HTTP request to its trace.
type Correlation struct {
	TraceID   string
	RequestID string
}

func WithCorrelation(ctx context.Context, c *Correlation) context.Context {
	return context.WithValue(ctx, correlationKey{}, c)
}

func GetCorrelation(ctx context.Context) *Correlation {
	if ctx == nil {
		return nil
	}
	c, _ := ctx.Value(correlationKey{}).(*Correlation)
	return c
}

// LogFields returns the non-empty IDs as logger key/value pairs.
func (c *Correlation) LogFields() []interface{} {
	if c == nil {
		return nil
	}
	var fields []interface{}
	if c.TraceID != "" {
		fields = append(fields, "trace_id", c.TraceID)
	}
	if c.RequestID != "" {
		fields = append(fields, "request_id", c.RequestID)
	}
	return fields
}

// ValidRequestID accepts IDs made of letters, digits, '-', '_' and '.'.
func ValidRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
