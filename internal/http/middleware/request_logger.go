// Package middleware provides HTTP middleware functions.
package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/namesmith/pkg/logger"
)

// RequestLogger logs one structured line per request. The level follows the status class.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		size := c.Writer.Size()
		if size < 0 {
			size = 0
		}
		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       path,
			"route":      c.FullPath(),
			"status":     status,
			"latency_ms": latency.Milliseconds(),
			"bytes":      size,
			"ip":         c.ClientIP(),
			"ua":         c.Request.UserAgent(),
		}
		if len(c.Errors) > 0 {
			errs := make([]string, 0, len(c.Errors))
			for _, e := range c.Errors {
				errs = append(errs, e.Error())
			}
			fields["errors"] = strings.Join(errs, "; ")
		}

		entry := logger.With(c.Request.Context(), fields)
		switch {
		case status >= 500:
			entry.Error("request completed")
		case status >= 400:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}
