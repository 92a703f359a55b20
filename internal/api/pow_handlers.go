// Package api wires the Gin router, middleware chain, and HTTP handlers
// that sit above the authentication core.
package api

import (
	"net/http"

	"github.com/adorsys-gis/eventrelay/internal/apperrors"
	"github.com/adorsys-gis/eventrelay/internal/certificate"
	"github.com/adorsys-gis/eventrelay/internal/pow"
	"github.com/gin-gonic/gin"
)

type powVerifyRequest struct {
	Solution struct {
		ChallengeID string `json:"challenge_id"`
		Nonce       uint64 `json:"nonce"`
		Hash        string `json:"hash"`
	} `json:"solution"`
	PublicKey string `json:"public_key"`
	RelayID   string `json:"relay_id"`
}

// PowHandlers groups the two proof-of-work bootstrap endpoints.
type PowHandlers struct {
	powSvc  *pow.Service
	certSvc *certificate.Service
}

// NewPowHandlers constructs the PoW handler group.
func NewPowHandlers(powSvc *pow.Service, certSvc *certificate.Service) *PowHandlers {
	return &PowHandlers{powSvc: powSvc, certSvc: certSvc}
}

// Challenge handles POST /api/v1/pow/challenge.
func (h *PowHandlers) Challenge(c *gin.Context) {
	challenge, err := h.powSvc.GenerateChallenge()
	if err != nil {
		apperrors.AbortWithError(c, apperrors.Internal("failed to generate challenge"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"challenge_id":   challenge.ChallengeID,
		"challenge_data": challenge.ChallengeData,
		"difficulty":     challenge.Difficulty,
		"expires_at":     challenge.ExpiresAt,
	})
}

// Verify handles POST /api/v1/pow/verify: on a valid solution it issues a
// device certificate token. PoW failure is 401, except a solution hash
// that does not match the recomputed one, which is 400; certificate issuance
// failure (after PoW has already succeeded) is 500: the client did
// everything right, but the server could not hold up its end.
func (h *PowHandlers) Verify(c *gin.Context) {
	var req powVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.AbortWithError(c, apperrors.BadRequest("malformed verify request"))
		return
	}

	err := h.powSvc.VerifySolution(pow.Solution{
		ChallengeID: req.Solution.ChallengeID,
		Nonce:       req.Solution.Nonce,
		Hash:        req.Solution.Hash,
	})
	if err != nil {
		if appErr, ok := apperrors.IsAppError(err); ok {
			apperrors.AbortWithError(c, appErr)
			return
		}
		apperrors.AbortWithError(c, apperrors.Unauthorized("proof of work verification failed"))
		return
	}

	token, err := h.certSvc.IssueCertificate(req.RelayID, req.PublicKey)
	if err != nil {
		apperrors.AbortWithError(c, apperrors.Internal("failed to issue certificate"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
