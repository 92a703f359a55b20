package middleware

import (
	"time"

	"github.com/adorsys-gis/eventrelay/internal/logger"
	"github.com/gin-gonic/gin"
)

// StructuredLoggerConfig controls which paths and fields the request logger
// emits.
type StructuredLoggerConfig struct {
	SkipPaths       []string
	SkipHealthCheck bool
	LogQuery        bool
	LogUserAgent    bool
}

// DefaultStructuredLoggerConfig skips /health and logs query strings but
// not user agents.
func DefaultStructuredLoggerConfig() StructuredLoggerConfig {
	return StructuredLoggerConfig{SkipHealthCheck: true, LogQuery: true}
}

// StructuredLogger logs one zerolog line per request via logger.HTTP(),
// using the same structured logger the rest of this service uses.
func StructuredLogger(config StructuredLoggerConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = struct{}{}
	}
	if config.SkipHealthCheck {
		skip["/health"] = struct{}{}
		skip["/api/v1/health"] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		event := logger.HTTP().Info()
		if c.Writer.Status() >= 500 {
			event = logger.HTTP().Error()
		} else if c.Writer.Status() >= 400 {
			event = logger.HTTP().Warn()
		}

		event = event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Str("request_id", GetRequestID(c))

		if config.LogQuery && c.Request.URL.RawQuery != "" {
			event = event.Str("query", c.Request.URL.RawQuery)
		}
		if config.LogUserAgent {
			event = event.Str("user_agent", c.Request.UserAgent())
		}
		event.Msg("request handled")
	}
}
