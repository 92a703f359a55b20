package certificate

import (
	"testing"
	"time"

	"github.com/adorsys-gis/eventrelay/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidateCertificate(t *testing.T) {
	svc := New([]byte("test-secret"), 24*time.Hour)

	token, err := svc.IssueCertificate("relay-1", "pubkey-material")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	validation, err := svc.ValidateCertificate(token)
	require.NoError(t, err)
	assert.Equal(t, "relay-1", validation.RelayID)
	assert.Equal(t, "pubkey-material", validation.PublicKey)
}

func TestValidateCertificateExpired(t *testing.T) {
	svc := New([]byte("test-secret"), -1*time.Hour)

	token, err := svc.IssueCertificate("relay-1", "pubkey-material")
	require.NoError(t, err)

	_, err = svc.ValidateCertificate(token)
	require.Error(t, err)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeCertificateFailed, appErr.Code)

	assert.Equal(t, 0, svc.store.Count())
}

func TestValidateCertificateWrongSecretFails(t *testing.T) {
	svc := New([]byte("secret-a"), 24*time.Hour)
	token, err := svc.IssueCertificate("relay-1", "pubkey-material")
	require.NoError(t, err)

	other := New([]byte("secret-b"), 24*time.Hour)
	_, err = other.ValidateCertificate(token)
	require.Error(t, err)
}

func TestValidateCertificateGarbageToken(t *testing.T) {
	svc := New([]byte("test-secret"), 24*time.Hour)
	_, err := svc.ValidateCertificate("not-a-jwt")
	require.Error(t, err)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeCertificateFailed, appErr.Code)
}

func TestValidateCertificateNotFoundAfterManualRemoval(t *testing.T) {
	svc := New([]byte("test-secret"), 24*time.Hour)
	token, err := svc.IssueCertificate("relay-1", "pubkey-material")
	require.NoError(t, err)

	claims := &Claims{}
	_, parseErr := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return svc.serverSecret, nil
	})
	require.NoError(t, parseErr)

	svc.store.mu.Lock()
	delete(svc.store.data, claims.CertificateID)
	svc.store.mu.Unlock()

	_, err = svc.ValidateCertificate(token)
	require.Error(t, err)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeCertificateFailed, appErr.Code)
}
