// Package auth issues and checks the ephemeral credentials used by the game:
// per-connection session tokens and the shared admin secret.
package auth

import (
	"crypto/ed25519"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// privateKey signs session tokens. A fresh key pair is generated per process;
// tokens are only ever compared against the in-memory registry, so surviving
// a restart is not required.
var (
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
)

// Init generates the ed25519 key pair used for signing session tokens.
func Init() error {
	var err error
	publicKey, privateKey, err = ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("failed to generate ed25519 key pair: %w", err)
	}
	return nil
}

// mintToken creates a signed session token for the given identity. The random
// jti makes every issued token distinct even for the same identity.
func mintToken(identity uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": identity.String(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(privateKey)
}
