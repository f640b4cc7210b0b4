package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dskvich/oracai/pkg/logger"
)

const (
	SessionCookie   = "oracai_session"
	RequestIDHeader = "X-Request-ID"

	sessionIDKey = "sessionID"
)

// RequestID tags the request context with an id taken from the X-Request-ID header or
// generated on the spot.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}

// RequestLogger logs every request with its status and duration.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration", time.Since(start),
			"client", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			slog.ErrorContext(ctx, "Request failed", attrs...)
		case status >= http.StatusBadRequest:
			slog.WarnContext(ctx, "Request rejected", attrs...)
		default:
			slog.InfoContext(ctx, "Request served", attrs...)
		}
	}
}

// Recover turns a panic into a 500 and logs the stack.
func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "Panic recovered in handler",
					"panic", r,
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// Session makes sure every browser carries a session id cookie. The chat history is keyed by it.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if _, parseErr := uuid.Parse(sessionID); err != nil || parseErr != nil {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sessionID, 0, "/", "", false, true)
		}

		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
