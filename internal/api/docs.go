package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const openAPIJSON = `{
  "openapi": "3.0.3",
  "info": {"title": "Event Relay Ingestion Server", "version": "1.0.0"},
  "paths": {
    "/api/v1/pow/challenge": {"post": {"summary": "Issue a proof-of-work challenge"}},
    "/api/v1/pow/verify": {"post": {"summary": "Verify a proof-of-work solution and issue a certificate"}},
    "/api/v1/events": {"post": {"summary": "Submit a signed event package"}},
    "/api/v1/events/package": {"post": {"summary": "Submit and archive a signed event package"}},
    "/api/v1/events/{hash}/verify": {"get": {"summary": "Check whether an event hash was stored"}},
    "/api/v1/relays/register": {"post": {"summary": "Register a relay device (not implemented)"}},
    "/api/v1/relays/{relay_id}": {"get": {"summary": "Look up a relay device (not implemented)"}}
  }
}`

const openAPIYAML = `openapi: 3.0.3
info:
  title: Event Relay Ingestion Server
  version: 1.0.0
paths:
  /api/v1/pow/challenge:
    post:
      summary: Issue a proof-of-work challenge
  /api/v1/pow/verify:
    post:
      summary: Verify a proof-of-work solution and issue a certificate
  /api/v1/events:
    post:
      summary: Submit a signed event package
  /api/v1/events/package:
    post:
      summary: Submit and archive a signed event package
  /api/v1/events/{hash}/verify:
    get:
      summary: Check whether an event hash was stored
  /api/v1/relays/register:
    post:
      summary: Register a relay device (not implemented)
  /api/v1/relays/{relay_id}:
    get:
      summary: Look up a relay device (not implemented)
`

const docsHTML = `<!DOCTYPE html>
<html>
<head><title>Event Relay Ingestion Server</title></head>
<body>
<h1>Event Relay Ingestion Server</h1>
<p>See <a href="/openapi-json">/openapi-json</a> or <a href="/openapi-yaml">/openapi-yaml</a> for the API description.</p>
</body>
</html>`

// Docs handles GET /docs with a minimal static landing page.
func Docs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(docsHTML))
}

// OpenAPIJSON handles GET /openapi-json.
func OpenAPIJSON(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(openAPIJSON))
}

// OpenAPIYAML handles GET /openapi-yaml.
func OpenAPIYAML(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", []byte(openAPIYAML))
}
