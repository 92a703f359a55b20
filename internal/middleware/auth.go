package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/adorsys-gis/eventrelay/internal/apperrors"
	"github.com/adorsys-gis/eventrelay/internal/certificate"
	"github.com/adorsys-gis/eventrelay/internal/eventpkg"
	"github.com/adorsys-gis/eventrelay/internal/jws"
	"github.com/adorsys-gis/eventrelay/internal/logger"
	"github.com/gin-gonic/gin"
)

// ValidatedRelayIDHeader is the channel downstream handlers read the
// authenticated relay identity from. Any inbound value is stripped before
// the middleware runs its own checks, since downstream handlers must never
// trust a caller-supplied value of this header.
const ValidatedRelayIDHeader = "X-Validated-Relay-ID"

const (
	contextKeyRelayID      = "relay_id"
	contextKeyEventPackage = "event_package"
)

// publicPaths lists the endpoints reachable without a bearer token. A
// request matches if its path equals an entry or starts with entry+"/".
var publicPaths = []string{
	"/health",
	"/docs",
	"/openapi-json",
	"/openapi-yaml",
	"/api/v1/pow/challenge",
	"/api/v1/pow/verify",
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// signedEventEnvelope is the wire shape of a protected request body that
// carries an event: {jwtEventData}.
type signedEventEnvelope struct {
	JWTEventData string `json:"jwtEventData"`
}

// Auth gates every protected route: allow-list bypass, bearer extraction,
// certificate validation, full body buffering, best-effort envelope parse
// plus JWS verification, and downstream identity injection via
// ValidatedRelayIDHeader.
func Auth(certSvc *certificate.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Header.Del(ValidatedRelayIDHeader)

		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		token, ok := extractBearerToken(c.Request.Header.Get("Authorization"))
		if !ok {
			apperrors.AbortWithError(c, apperrors.Unauthorized("missing bearer token"))
			return
		}

		validation, err := certSvc.ValidateCertificate(token)
		if err != nil {
			logger.Security().Warn().Str("path", c.Request.URL.Path).Msg("certificate validation failed")
			apperrors.AbortWithError(c, apperrors.Unauthorized("invalid or expired token"))
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			apperrors.AbortWithError(c, apperrors.BadRequest("failed to read request body"))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var envelope signedEventEnvelope
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.JWTEventData != "" {
			ep, jwsErr := jws.VerifyEventJWS(envelope.JWTEventData, validation.PublicKey)
			if jwsErr != nil {
				logger.Security().Warn().Str("relay_id", validation.RelayID).Msg("event JWS verification failed")
				apperrors.AbortWithError(c, apperrors.New(apperrors.CodeJWSVerifyFailed, "JWT verification failed"))
				return
			}
			c.Set(contextKeyEventPackage, ep)
		}

		c.Set(contextKeyRelayID, validation.RelayID)
		c.Request.Header.Set(ValidatedRelayIDHeader, validation.RelayID)

		c.Next()
	}
}

func extractBearerToken(authHeader string) (string, bool) {
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetRelayID returns the authenticated relay_id the auth middleware
// attached to the context. Handlers must use this, never a body field.
func GetRelayID(c *gin.Context) (string, bool) {
	v, ok := c.Get(contextKeyRelayID)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetEventPackage returns the verified EventPackage the auth middleware
// attached to the context, if the request body parsed as a
// SignedEventEnvelope and its JWS verified.
func GetEventPackage(c *gin.Context) (eventpkg.EventPackage, bool) {
	v, ok := c.Get(contextKeyEventPackage)
	if !ok {
		return eventpkg.EventPackage{}, false
	}
	ep, ok := v.(eventpkg.EventPackage)
	return ep, ok
}

// RequireRelayIDHeader is a defense-in-depth helper for handlers invoked
// outside the normal middleware chain (e.g. in tests): it reads
// ValidatedRelayIDHeader directly and fails closed if absent.
func RequireRelayIDHeader(c *gin.Context) (string, error) {
	id := c.Request.Header.Get(ValidatedRelayIDHeader)
	if id == "" {
		return "", apperrors.Unauthorized("no validated relay identity")
	}
	return id, nil
}
