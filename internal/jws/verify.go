// Package jws implements the device-key decode pipeline and ES256 JWS
// verification for signed event envelopes. The JWK-to-ecdsa.PublicKey
// reconstruction assembles a SEC1 uncompressed point directly rather than
// pulling in a dedicated JWK library for a single pre-validated P-256 key.
package jws

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/json"

	"github.com/adorsys-gis/eventrelay/internal/apperrors"
	"github.com/adorsys-gis/eventrelay/internal/eventpkg"
	"github.com/adorsys-gis/eventrelay/internal/hashutil"
	"github.com/golang-jwt/jwt/v5"
)

const expectedAudience = "event_server"

// jwk is the minimal JSON Web Key shape the envelope's public_key material
// decodes to: {kty, crv, x, y}, with an optional private "d" ignored.
type jwk struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

// eventClaims is the JWT payload carried inside the signed envelope: a
// single known claim "payload" holding the EventPackage, plus exp and aud.
type eventClaims struct {
	Payload eventpkg.EventPackage `json:"payload"`
	jwt.RegisteredClaims
}

// DecodePublicKey base64-standard decodes the material, parses it as a
// JWK, requires EC/P-256, base64url-no-pad decodes the 32-byte coordinates,
// and assembles a SEC1 uncompressed point into an *ecdsa.PublicKey.
func DecodePublicKey(publicKeyMaterial string) (*ecdsa.PublicKey, error) {
	raw, err := hashutil.DecodeStd(publicKeyMaterial)
	if err != nil {
		return nil, apperrors.Validation("invalid public key encoding")
	}

	var key jwk
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil, apperrors.Validation("invalid JWK shape")
	}

	if key.Kty != "EC" {
		return nil, apperrors.Validation("unsupported JWK kty")
	}
	if key.Crv != "P-256" {
		return nil, apperrors.Validation("unsupported JWK crv")
	}

	xBytes, err := hashutil.DecodeURLNoPad(key.X)
	if err != nil || len(xBytes) != 32 {
		return nil, apperrors.Validation("invalid JWK x coordinate")
	}
	yBytes, err := hashutil.DecodeURLNoPad(key.Y)
	if err != nil || len(yBytes) != 32 {
		return nil, apperrors.Validation("invalid JWK y coordinate")
	}

	point := make([]byte, 0, 65)
	point = append(point, 0x04)
	point = append(point, xBytes...)
	point = append(point, yBytes...)

	curve := elliptic.P256()
	px, py := elliptic.Unmarshal(curve, point)
	if px == nil {
		return nil, apperrors.Validation("invalid EC point")
	}

	return &ecdsa.PublicKey{Curve: curve, X: px, Y: py}, nil
}

// VerifyEventJWS verifies jwtString as an ES256-signed JWS under
// devicePublicKeyMaterial (the certificate's stored public_key field) and
// returns the embedded EventPackage. Every failure mode collapses to a
// single "JWT verification failed" error so callers can't distinguish
// bad-signature from expired from malformed.
func VerifyEventJWS(jwtString string, devicePublicKeyMaterial string) (eventpkg.EventPackage, error) {
	failure := apperrors.New(apperrors.CodeJWSVerifyFailed, "JWT verification failed")

	pubKey, err := DecodePublicKey(devicePublicKeyMaterial)
	if err != nil {
		return eventpkg.EventPackage{}, failure
	}

	claims := &eventClaims{}
	token, err := jwt.ParseWithClaims(jwtString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, apperrors.New(apperrors.CodeJWSVerifyFailed, "unexpected signing method")
		}
		return pubKey, nil
	},
		jwt.WithValidMethods([]string{"ES256"}),
		jwt.WithAudience(expectedAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return eventpkg.EventPackage{}, failure
	}

	return claims.Payload, nil
}
