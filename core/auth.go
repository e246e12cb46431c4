package core

import (
	"strings"
	"time"
)

// SessionTTL is how long a session stays valid after a successful login.
// There is no renewal: a new login always produces a new session.
const SessionTTL = 7 * 24 * time.Hour

// Challenge represents an authentication challenge
type Challenge struct {
	Address  string    // Ethereum address of the user
	Domain   string    // Domain the challenge was issued for
	IssuedAt time.Time // When the challenge was created
}

// Session represents an authenticated user session
type Session struct {
	ID        string    // Opaque random session identifier, handed to the client
	Address   string    // Ethereum address of the user, always lower-cased
	CreatedAt time.Time // When the session was created
	ExpiresAt time.Time // When the session expires
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// NormalizeAddress lower-cases an address so identity comparisons are
// case-insensitive everywhere a session is stored or looked up.
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}
