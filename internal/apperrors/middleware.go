package apperrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorHandler drains c.Errors after the handler chain runs and renders the
// last AppError (or a generic 500 for anything else) as the wire envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if appErr, ok := IsAppError(err); ok {
			log.Error().
				Str("code", string(appErr.Code)).
				Int("status", appErr.StatusCode).
				Str("path", c.Request.URL.Path).
				Msg(appErr.Message)
			c.JSON(appErr.StatusCode, appErr.ToResponse())
			return
		}

		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, Internal("internal server error").ToResponse())
	}
}

// Recovery converts a panic anywhere downstream into a 500 response instead
// of crashing the process.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("recovered panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, Internal("internal server error").ToResponse())
			}
		}()
		c.Next()
	}
}

// AbortWithError appends err to the Gin error chain and aborts the chain so
// ErrorHandler renders it.
func AbortWithError(c *gin.Context, err *AppError) {
	_ = c.Error(err)
	c.Abort()
}
