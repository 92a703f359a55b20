// Package relay holds the relay-provisioning controllers. These are
// intentionally kept as stubs: routable so the HTTP surface is complete,
// but returning 501 rather than implementing fleet provisioning.
package relay

import (
	"github.com/adorsys-gis/eventrelay/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// Register handles POST /api/v1/relays/register.
func Register(c *gin.Context) {
	apperrors.AbortWithError(c, apperrors.NotImplemented("relay registration is not implemented"))
}

// Get handles GET /api/v1/relays/:relay_id.
func Get(c *gin.Context) {
	apperrors.AbortWithError(c, apperrors.NotImplemented("relay lookup is not implemented"))
}
