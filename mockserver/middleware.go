package mockserver

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/kbukum/mallkit/logger"
	"github.com/kbukum/mallkit/observability"
)

const (
	headerRequestID = "X-Request-Id"
	ctxRequestID    = "request_id"
	ctxUserID       = "user_id"
)

// Recovery recovers from panics, logs the stack and answers a code 500
// envelope.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("Panic recovered", map[string]interface{}{
					"error":     fmt.Sprintf("%v", err),
					"stack":     string(debug.Stack()),
					"path":      c.Request.URL.Path,
					"method":    c.Request.Method,
					"client_ip": c.ClientIP(),
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
					Code:    CodeServerError,
					Message: MsgServerError,
				})
			}
		}()
		c.Next()
	}
}

// RequestID echoes the caller's X-Request-Id or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// RequestLogger logs every request except health checks. The envelope code
// is not visible here; only the HTTP status drives the level.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		fields := map[string]interface{}{
			logger.FieldMethod:   c.Request.Method,
			logger.FieldPath:     path,
			logger.FieldStatus:   status,
			logger.FieldDuration: latency.Milliseconds(),
			"client":             c.ClientIP(),
		}
		if id := c.GetString(ctxRequestID); id != "" {
			fields[logger.FieldRequestID] = id
		}
		if uid, ok := c.Get(ctxUserID); ok {
			fields[logger.FieldUserID] = uid
		}
		if latency > 500*time.Millisecond {
			fields["slow"] = true
		}
		logByStatus(log, fields, status)
	}
}

func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}

// Trace wraps each request in a span on the global tracer provider.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := observability.StartSpan(c.Request.Context(), observability.SpanMockAPI)
		defer span.End()

		span.SetAttributes(
			attribute.String(observability.AttrMethod, c.Request.Method),
			attribute.String(observability.AttrPath, c.Request.URL.Path),
			attribute.String(observability.AttrRequestID, c.GetString(ctxRequestID)),
		)
		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int(observability.AttrHTTPStatus, status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

// Latency delays every response by d.
func Latency(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d > 0 {
			select {
			case <-time.After(d):
			case <-c.Request.Context().Done():
			}
		}
		c.Next()
	}
}

// Auth requires a bearer token issued by tokens. The resolved user id is
// stored on the gin context.
func Auth(tokens *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			respondFail(c, CodeUnauthorized, MsgUnauthorized)
			return
		}
		uid, err := tokens.Verify(strings.TrimSpace(raw))
		if err != nil {
			respondFail(c, CodeUnauthorized, MsgUnauthorized)
			return
		}
		c.Set(ctxUserID, uid)
		c.Next()
	}
}

func currentUser(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}
