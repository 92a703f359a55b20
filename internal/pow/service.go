// Package pow implements the proof-of-work challenge/solution pipeline:
// challenge issuance, solution verification against a required difficulty,
// and single-use consumption.
package pow

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	"github.com/adorsys-gis/eventrelay/internal/apperrors"
	"github.com/adorsys-gis/eventrelay/internal/hashutil"
)

const (
	challengeIDBytes   = 16
	challengeDataBytes = 32
)

// Solution is a client-submitted attempt at a previously issued challenge.
// Transient — never stored.
type Solution struct {
	ChallengeID string
	Nonce       uint64
	Hash        string // base64-standard of the raw 32-byte SHA-256
}

// Service issues challenges and verifies solutions. A zero-value Service is
// not usable — construct with New.
type Service struct {
	store             *store
	defaultDifficulty int
	challengeLifetime time.Duration
}

// New constructs a PoW service with the given default difficulty (leading
// hex-nibble zeros required) and challenge lifetime.
func New(defaultDifficulty int, challengeLifetime time.Duration) *Service {
	return &Service{
		store:             newStore(),
		defaultDifficulty: defaultDifficulty,
		challengeLifetime: challengeLifetime,
	}
}

// GenerateChallenge creates, stores, and returns a fresh challenge.
func (s *Service) GenerateChallenge() (Challenge, error) {
	idBytes := make([]byte, challengeIDBytes)
	if _, err := rand.Read(idBytes); err != nil {
		return Challenge{}, apperrors.Internal("failed to generate challenge id")
	}
	dataBytes := make([]byte, challengeDataBytes)
	if _, err := rand.Read(dataBytes); err != nil {
		return Challenge{}, apperrors.Internal("failed to generate challenge data")
	}

	now := time.Now().UTC()
	c := Challenge{
		ChallengeID:   hashutil.EncodeStd(idBytes),
		ChallengeData: hashutil.EncodeStd(dataBytes),
		Difficulty:    s.defaultDifficulty,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.challengeLifetime),
	}
	s.store.Insert(now, c)
	return c, nil
}

// VerifySolution looks up the challenge, rejects if absent or expired,
// recomputes the hash over challenge_data || little-endian nonce, compares
// it to the claimed hash, checks the leading-hex-nibble-zero count against
// the challenge's difficulty, and on success atomically consumes the
// challenge so it cannot be reused.
func (s *Service) VerifySolution(sol Solution) error {
	now := time.Now().UTC()

	challenge, result := s.store.Get(now, sol.ChallengeID)
	switch result {
	case lookupNotFound:
		return apperrors.New(apperrors.CodeChallengeNotFound, "challenge not found")
	case lookupExpired:
		return apperrors.New(apperrors.CodeChallengeExpired, "challenge has expired")
	}

	challengeData, err := hashutil.DecodeStd(challenge.ChallengeData)
	if err != nil {
		return apperrors.New(apperrors.CodeInvalidPowHash, "invalid hash in solution")
	}

	nonceBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(nonceBytes, sol.Nonce)
	computed := hashutil.SHA256(challengeData, nonceBytes)
	if hashutil.EncodeStd(computed) != sol.Hash {
		return apperrors.New(apperrors.CodeInvalidPowHash, "invalid hash in solution")
	}

	if hashutil.LeadingZeroNibbles(computed) < challenge.Difficulty {
		return apperrors.New(apperrors.CodeDifficultyNotMet, "solution does not meet required difficulty")
	}

	if !s.store.Consume(sol.ChallengeID) {
		// Another caller already consumed this challenge: a second
		// concurrent winner is indistinguishable from a replay.
		return apperrors.New(apperrors.CodeChallengeNotFound, "challenge not found")
	}
	return nil
}
