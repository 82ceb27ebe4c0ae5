// Package auth holds the session token store and the access rules the
// HTTP layer turns into 401/403 responses.
package auth

import (
	"sync"

	"github.com/google/uuid"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
)

// TokenStore maps opaque session tokens to authenticated employees. Tokens
// live until revoked or the process exits; nothing is persisted. All
// methods are safe for concurrent use.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]*domain.Employee
}

func NewTokenStore() *TokenStore {
	return &TokenStore{
		tokens: make(map[string]*domain.Employee),
	}
}

// Issue creates a fresh token for the employee. Each login gets its own
// token, so one account may hold several live sessions. The store keeps a
// snapshot of the employee, so later changes to the argument do not leak
// into other sessions.
func (s *TokenStore) Issue(emp *domain.Employee) string {
	token := uuid.NewString()
	snapshot := *emp

	s.mu.Lock()
	s.tokens[token] = &snapshot
	s.mu.Unlock()

	return token
}

// Resolve returns the employee a token was issued to, or nil for unknown
// or revoked tokens. Each call hands out a private copy: concurrent
// requests on the same token never share a mutable object.
func (s *TokenStore) Resolve(token string) *domain.Employee {
	if token == "" {
		return nil
	}

	s.mu.RLock()
	emp, ok := s.tokens[token]
	s.mu.RUnlock()

	if !ok {
		return nil
	}

	resolved := *emp
	return &resolved
}

// Revoke invalidates a token. Revoking an unknown token is a no-op.
func (s *TokenStore) Revoke(token string) {
	if token == "" {
		return
	}

	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}
