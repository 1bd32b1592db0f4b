package transport

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	portidempotency "github.com/alanyang/dao-janny/internal/port/idempotency"
)

// IdempotencyHeader carries the client-chosen key for a retried POST.
const IdempotencyHeader = "Idempotency-Key"

// noisyPrefixes are high-frequency read routes logged at Debug to keep Info clean.
var noisyPrefixes = []string{
	"/api/fees/",
	"/api/roles/",
	"/api/ws",
}

func noisy(route string) bool {
	for _, p := range noisyPrefixes {
		if strings.HasPrefix(route, p) {
			return true
		}
	}
	return false
}

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if c.Request.Method == http.MethodOptions {
			return
		}
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if c.Request.Method == http.MethodGet && noisy(c.FullPath()) {
			slog.Debug("request", attrs...)
			return
		}
		slog.Info("request", attrs...)
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+IdempotencyHeader)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// IdempotencyMiddleware replays the stored response for a repeated
// Idempotency-Key. Keys are scoped by opType and route, so one header value
// reused against another endpoint runs that endpoint. Requests without the
// header pass through untouched. Server errors are not stored so the client
// can retry them.
func IdempotencyMiddleware(store portidempotency.Store, opType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(IdempotencyHeader)
		if header == "" {
			c.Next()
			return
		}
		key := ScopedIdempotencyKey(opType, c.FullPath(), header)
		ctx := c.Request.Context()

		prev, found, err := store.Check(ctx, key)
		if err != nil {
			slog.ErrorContext(ctx, "idempotency check failed", "key", key, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "idempotency check failed"})
			return
		}
		if found {
			c.Header("Idempotent-Replayed", "true")
			c.Data(prev.Status, "application/json; charset=utf-8", prev.Body)
			c.Abort()
			return
		}

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		status := w.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		resp := portidempotency.Response{Status: status, Body: w.body.Bytes()}
		if err := store.Store(ctx, key, opType, resp); err != nil {
			slog.ErrorContext(ctx, "idempotency store failed", "key", key, "error", err)
		}
	}
}

// ScopedIdempotencyKey is the store key for a client key sent to route.
func ScopedIdempotencyKey(opType, route, key string) string {
	return opType + ":" + route + ":" + key
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
