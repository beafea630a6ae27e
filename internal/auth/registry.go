package auth

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maps connection identities to their current session token. One
// token per identity; issuing a new one silently invalidates the old.
type Registry struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]string
}

// NewRegistry returns an empty token registry.
func NewRegistry() *Registry {
	return &Registry{tokens: make(map[uuid.UUID]string)}
}

// Issue mints a fresh token for identity and records it, overwriting any
// prior token.
func (r *Registry) Issue(identity uuid.UUID) (string, error) {
	token, err := mintToken(identity)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	r.tokens[identity] = token
	r.mu.Unlock()
	return token, nil
}

// Verify reports whether token is the current token for identity. An absent
// identity always verifies false.
func (r *Registry) Verify(identity uuid.UUID, token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.tokens[identity]
	return ok && token != "" && current == token
}

// Revoke deletes the stored token for identity, if any.
func (r *Registry) Revoke(identity uuid.UUID) {
	r.mu.Lock()
	delete(r.tokens, identity)
	r.mu.Unlock()
}
