// Package session holds the authenticated identity for the monitoring
// service and persists it across process restarts.
package session

import (
	"crypto/sha256"
	"time"

	"github.com/mr-tron/base58"
)

// Session is the token/secret/user tuple issued by a successful login.
// Token and Secret are always both present; there is no
// partially-authenticated state. The Secret is never transmitted, it is
// only an input to request signing.
type Session struct {
	Token    string    `json:"token"`
	Secret   string    `json:"secret"`
	UserID   string    `json:"user_id"`
	Username string    `json:"username,omitempty"`
	Role     int       `json:"role,omitempty"`
	IssuedAt time.Time `json:"issued_at"`
}

// Valid reports whether the session carries a usable credential pair.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.Secret != ""
}

// Fingerprint returns a Base58-encoded SHA256 of the token, safe to log
// without leaking the credential.
func (s *Session) Fingerprint() string {
	if s == nil || s.Token == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(s.Token))
	return base58.Encode(hash[:])
}
