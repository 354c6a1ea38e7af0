// Package domain defines the core domain models for SkyWalker.
package domain

import "sync"

// Session is the login state of the process: the token issued by the
// server and the center the user operates on.
//
// A Session is logged in only when both are present. Reads take a shared
// lock and Snapshot returns both fields from one critical section.
// Session performs no I/O and never persists the token.
type Session struct {
	mu     sync.RWMutex
	token  *Token
	center *Center
}

// NewSession creates an unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// Login installs token. The active center is left untouched.
func (s *Session) Login(token Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = &token
}

// SelectCenter sets the active center.
func (s *Session) SelectCenter(center *Center) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.center = center
}

// Logout clears both the token and the active center.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	s.center = nil
}

// IsLoggedIn reports whether both a token and a center are set.
func (s *Session) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != nil && s.center != nil
}

// CurrentToken returns the installed token, or the zero Token.
func (s *Session) CurrentToken() Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return Token{}
	}
	return *s.token
}

// CurrentCenter returns the active center, or nil.
func (s *Session) CurrentCenter() *Center {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.center
}

// Snapshot returns token and center as one consistent pair.
// ok is false unless the session is logged in.
func (s *Session) Snapshot() (token Token, center *Center, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil || s.center == nil {
		return Token{}, nil, false
	}
	return *s.token, s.center, true
}
