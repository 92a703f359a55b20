// Package hashutil provides the canonical hash and codec primitives shared
// by the proof-of-work, certificate, and event-hashing components.
package hashutil

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// SHA256 hashes the concatenation of all byte slices in order.
func SHA256(parts ...[]byte) []byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// EncodeStd returns the standard (padded) base64 encoding of b.
func EncodeStd(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeStd decodes standard (padded) base64.
func DecodeStd(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// EncodeURLNoPad returns the URL-safe, unpadded base64 encoding of b.
func EncodeURLNoPad(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeURLNoPad decodes URL-safe, unpadded base64.
func DecodeURLNoPad(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

// HexLower returns the lowercase hex encoding of b.
func HexLower(b []byte) string {
	return hex.EncodeToString(b)
}

// LeadingZeroNibbles counts leading zero hex nibbles across b: for each byte
// in order, a zero byte contributes two nibbles and continues; a byte below
// 0x10 contributes one nibble and stops the count; any other byte stops it
// immediately.
func LeadingZeroNibbles(b []byte) int {
	count := 0
	for _, v := range b {
		if v == 0 {
			count += 2
			continue
		}
		if v < 16 {
			count++
		}
		break
	}
	return count
}
