package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TimeoutConfig controls the per-request deadline middleware.
type TimeoutConfig struct {
	Timeout       time.Duration
	ErrorMessage  string
	ExcludedPaths []string
}

// DefaultTimeoutConfig returns the 30-second default used when
// REQUEST_TIMEOUT_SECONDS is not overridden.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Timeout:      30 * time.Second,
		ErrorMessage: "request timed out",
	}
}

// Timeout bounds request handling to config.Timeout. On expiry it responds
// 503 and abandons the in-flight handler goroutine without forcibly
// terminating it. Only calls that take the request context (such as the
// object-store uploads) observe the cancellation; the in-memory PoW and
// certificate stores take no context, so a handler still running after the
// timeout can still change them.
func Timeout(config TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range config.ExcludedPaths {
			if c.Request.URL.Path == p {
				c.Next()
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), config.Timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		finished := make(chan struct{})
		go func() {
			c.Next()
			close(finished)
		}()

		select {
		case <-finished:
		case <-ctx.Done():
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": config.ErrorMessage})
		}
	}
}

// TimeoutWithDuration builds a Timeout middleware from just a duration,
// using the default error message and no excluded paths.
func TimeoutWithDuration(d time.Duration) gin.HandlerFunc {
	cfg := DefaultTimeoutConfig()
	cfg.Timeout = d
	return Timeout(cfg)
}
