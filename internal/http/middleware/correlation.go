package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/shiftplan-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"
)

// Correlate assigns every request a request ID and a trace ID.
// A well-formed X-Request-Id from the client is kept; anything else is replaced.
// The trace ID comes from the active span, so it matches exported traces.
func Correlate() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if !ctxutil.ValidRequestID(reqID) {
			reqID = uuid.NewString()
		}
		traceID := ""
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			traceID = sc.TraceID().String()
		}

		corr := &ctxutil.Correlation{TraceID: traceID, RequestID: reqID}
		c.Request = c.Request.WithContext(ctxutil.WithCorrelation(c.Request.Context(), corr))
		c.Set("request_id", reqID)
		c.Writer.Header().Set(headerRequestID, reqID)
		if traceID != "" {
			c.Writer.Header().Set(headerTraceID, traceID)
		}
		c.Next()
	}
}
