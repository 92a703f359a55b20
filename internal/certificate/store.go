package certificate

import (
	"sync"
	"time"
)

// DeviceCertificate is the server's authoritative record binding a relay to
// a public key and an expiry. The token a client presents is a signed,
// self-contained encoding of the certificate_id; this record is checked on
// every validation to allow immediate invalidation independent of the JWT's
// own exp claim.
type DeviceCertificate struct {
	CertificateID string
	RelayID       string
	PublicKey     string
	IssuedAt      time.Time
	ExpiresAt     time.Time
	Signature     string
}

// store is a thread-safe mapping from certificate ID to DeviceCertificate,
// with amortized expiry sweeping — the same shape as the PoW challenge
// store (see internal/pow/challenge.go).
type store struct {
	mu   sync.Mutex
	data map[string]DeviceCertificate
}

func newStore() *store {
	return &store{data: make(map[string]DeviceCertificate)}
}

// Insert adds a certificate, sweeping expired entries first.
func (s *store) Insert(now time.Time, c DeviceCertificate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.data[c.CertificateID] = c
}

type lookupResult int

const (
	lookupOK lookupResult = iota
	lookupNotFound
	lookupExpired
)

// Get looks up a certificate by id. If present but expired it is removed
// before returning lookupExpired, per §4.4's "must do so before returning
// the expiry error".
func (s *store) Get(now time.Time, id string) (DeviceCertificate, lookupResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	c, ok := s.data[id]
	if !ok {
		return DeviceCertificate{}, lookupNotFound
	}
	if now.After(c.ExpiresAt) {
		delete(s.data, id)
		return c, lookupExpired
	}
	return c, lookupOK
}

func (s *store) sweepLocked(now time.Time) {
	for id, c := range s.data {
		if now.After(c.ExpiresAt) {
			delete(s.data, id)
		}
	}
}

// Count returns the number of live entries. Test-only helper.
func (s *store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
