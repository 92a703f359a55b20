// Package api wires the Gin router, middleware chain, and HTTP handlers
// that sit above the authentication core.
package api

import (
	"time"

	"github.com/adorsys-gis/eventrelay/internal/apperrors"
	"github.com/adorsys-gis/eventrelay/internal/certificate"
	"github.com/adorsys-gis/eventrelay/internal/middleware"
	"github.com/adorsys-gis/eventrelay/internal/relay"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries what the router needs from the rest of the process
// to wire up the full middleware chain and route table.
type RouterConfig struct {
	CertService         *certificate.Service
	PowHandlers         *PowHandlers
	EventHandlers       *EventHandlers
	MaxRequestBodyBytes int64
	RequestTimeout      time.Duration
}

// NewRouter builds the Gin engine with the full middleware chain and route
// table. Middleware ordering: request ID and recovery first, then error
// handling, logging, size limits, timeout, security headers, and finally
// the auth gate immediately ahead of the handlers it protects.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(apperrors.Recovery())
	router.Use(apperrors.ErrorHandler())
	router.Use(middleware.StructuredLogger(middleware.DefaultStructuredLoggerConfig()))
	router.Use(middleware.RequestSizeLimiter(cfg.MaxRequestBodyBytes))
	router.Use(middleware.Timeout(middleware.TimeoutConfig{
		Timeout:      cfg.RequestTimeout,
		ErrorMessage: "request timed out",
		ExcludedPaths: []string{
			"/health",
		},
	}))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Auth(cfg.CertService))

	router.GET("/health", Health)
	router.GET("/docs", Docs)
	router.GET("/openapi-json", OpenAPIJSON)
	router.GET("/openapi-yaml", OpenAPIYAML)

	v1 := router.Group("/api/v1")
	{
		pow := v1.Group("/pow")
		pow.POST("/challenge", cfg.PowHandlers.Challenge)
		pow.POST("/verify", cfg.PowHandlers.Verify)

		events := v1.Group("/events")
		events.POST("", cfg.EventHandlers.CreateEvent)
		events.POST("/package", cfg.EventHandlers.CreateEventPackage)
		events.GET("/:hash/verify", cfg.EventHandlers.VerifyEventHash)

		relays := v1.Group("/relays")
		relays.POST("/register", relay.Register)
		relays.GET("/:relay_id", relay.Get)
	}

	return router
}
