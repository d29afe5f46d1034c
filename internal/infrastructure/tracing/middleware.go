package tracing

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Middleware stamps each request with an id, propagates it through the
// request context and response header, and logs a span on completion.
func Middleware(t *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensure(c.GetHeader(Header))

		ctx := context.WithValue(c.Request.Context(), contextKey{}, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(Header, requestID)

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
			t.log.Warn("request", fields...)
			return
		}
		t.log.Debug("request", fields...)
	}
}
