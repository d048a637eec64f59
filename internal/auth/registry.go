package auth

import "sync"

// TokenRegistry is the set of currently-active token strings. A token
// is authorized only while its string is present here; entries live
// from login until explicit logout or process exit. There is no expiry
// sweep.
type TokenRegistry struct {
	mu     sync.Mutex
	tokens map[string]struct{}
}

// NewTokenRegistry creates an empty registry.
func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{tokens: make(map[string]struct{})}
}

// Add marks a token as active.
func (r *TokenRegistry) Add(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = struct{}{}
}

// Remove deactivates a token. It reports whether the token was active;
// removing an absent token is not an error.
func (r *TokenRegistry) Remove(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token]; !ok {
		return false
	}
	delete(r.tokens, token)
	return true
}

// Contains reports whether a token is active.
func (r *TokenRegistry) Contains(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tokens[token]
	return ok
}

// Len returns the number of active tokens.
func (r *TokenRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}
