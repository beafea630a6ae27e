package auth

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters for the admin secret gate. The secret is checked at
// most a handful of times per session, so the cost can stay modest.
const (
	secretTime    = 3
	secretMemory  = 32 * 1024
	secretThreads = 2
	secretKeyLen  = 32
	secretSaltLen = 16
)

// AdminGate holds the derived hash of the shared admin secret. The plaintext
// is dropped after construction.
type AdminGate struct {
	salt []byte
	hash []byte
}

// NewAdminGate hashes the configured shared secret once at startup.
func NewAdminGate(secret string) (*AdminGate, error) {
	salt := make([]byte, secretSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	hash := argon2.IDKey([]byte(secret), salt, secretTime, secretMemory, secretThreads, secretKeyLen)
	return &AdminGate{salt: salt, hash: hash}, nil
}

// Check reports whether attempt matches the configured admin secret, in
// constant time with respect to the derived keys.
func (g *AdminGate) Check(attempt string) bool {
	candidate := argon2.IDKey([]byte(attempt), g.salt, secretTime, secretMemory, secretThreads, secretKeyLen)
	return subtle.ConstantTimeCompare(g.hash, candidate) == 1
}
