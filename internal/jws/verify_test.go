package jws

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/adorsys-gis/eventrelay/internal/eventpkg"
	"github.com/adorsys-gis/eventrelay/internal/hashutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKeyAndJWK(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	xBytes := priv.X.FillBytes(make([]byte, 32))
	yBytes := priv.Y.FillBytes(make([]byte, 32))

	jwkJSON, err := json.Marshal(jwk{
		Kty: "EC",
		Crv: "P-256",
		X:   hashutil.EncodeURLNoPad(xBytes),
		Y:   hashutil.EncodeURLNoPad(yBytes),
	})
	require.NoError(t, err)

	return priv, hashutil.EncodeStd(jwkJSON)
}

func signEvent(t *testing.T, priv *ecdsa.PrivateKey, ep eventpkg.EventPackage, aud string, exp time.Time) string {
	t.Helper()
	claims := eventClaims{
		Payload: ep,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			Audience:  jwt.ClaimStrings{aud},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	signed, err := token.SignedString(priv)
	require.NoError(t, err)
	return signed
}

func sampleEvent() eventpkg.EventPackage {
	return eventpkg.EventPackage{
		ID:      "11111111-1111-1111-1111-111111111111",
		Version: "1.0",
		Annotations: []eventpkg.EventAnnotation{
			{LabelID: "l1", Value: eventpkg.NewStringValue("v1"), Timestamp: time.Now().UTC()},
		},
		Metadata: eventpkg.EventMetadata{CreatedAt: time.Now().UTC(), Source: eventpkg.EventSourceWeb},
	}
}

func TestVerifyEventJWSHappyPath(t *testing.T) {
	priv, material := generateKeyAndJWK(t)
	ep := sampleEvent()
	token := signEvent(t, priv, ep, expectedAudience, time.Now().Add(time.Hour))

	got, err := VerifyEventJWS(token, material)
	require.NoError(t, err)
	assert.Equal(t, ep.ID, got.ID)
}

func TestVerifyEventJWSWrongAudience(t *testing.T) {
	priv, material := generateKeyAndJWK(t)
	token := signEvent(t, priv, sampleEvent(), "someone_else", time.Now().Add(time.Hour))

	_, err := VerifyEventJWS(token, material)
	assert.Error(t, err)
}

func TestVerifyEventJWSExpired(t *testing.T) {
	priv, material := generateKeyAndJWK(t)
	token := signEvent(t, priv, sampleEvent(), expectedAudience, time.Now().Add(-time.Hour))

	_, err := VerifyEventJWS(token, material)
	assert.Error(t, err)
}

func TestVerifyEventJWSWrongKey(t *testing.T) {
	priv, _ := generateKeyAndJWK(t)
	_, otherMaterial := generateKeyAndJWK(t)
	token := signEvent(t, priv, sampleEvent(), expectedAudience, time.Now().Add(time.Hour))

	_, err := VerifyEventJWS(token, otherMaterial)
	assert.Error(t, err)
}

func TestVerifyEventJWSTamperedPayload(t *testing.T) {
	priv, material := generateKeyAndJWK(t)
	token := signEvent(t, priv, sampleEvent(), expectedAudience, time.Now().Add(time.Hour))

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := hashutil.DecodeURLNoPad(parts[1])
	require.NoError(t, err)
	tamperedPayload := strings.Replace(string(payload), "1111", "2222", 1)
	require.NotEqual(t, string(payload), tamperedPayload)
	tampered := parts[0] + "." + hashutil.EncodeURLNoPad([]byte(tamperedPayload)) + "." + parts[2]

	_, err = VerifyEventJWS(tampered, material)
	assert.Error(t, err)
}

func TestDecodePublicKeyRejectsWrongKty(t *testing.T) {
	bad, err := json.Marshal(jwk{Kty: "RSA", Crv: "P-256", X: "x", Y: "y"})
	require.NoError(t, err)
	_, err = DecodePublicKey(hashutil.EncodeStd(bad))
	assert.Error(t, err)
}

func TestDecodePublicKeyRejectsWrongCrv(t *testing.T) {
	bad, err := json.Marshal(jwk{Kty: "EC", Crv: "P-384", X: "x", Y: "y"})
	require.NoError(t, err)
	_, err = DecodePublicKey(hashutil.EncodeStd(bad))
	assert.Error(t, err)
}

func TestDecodePublicKeyRejectsShortCoordinates(t *testing.T) {
	bad, err := json.Marshal(jwk{
		Kty: "EC",
		Crv: "P-256",
		X:   hashutil.EncodeURLNoPad([]byte{1, 2, 3}),
		Y:   hashutil.EncodeURLNoPad([]byte{1, 2, 3}),
	})
	require.NoError(t, err)
	_, err = DecodePublicKey(hashutil.EncodeStd(bad))
	assert.Error(t, err)
}
