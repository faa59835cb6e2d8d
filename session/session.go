package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the credential object handed to every component for the
// lifetime of a login. It replaces re-reading the token from ambient
// storage on each call: it is created once from the login response, passed
// explicitly, and torn down at logout.
type Session struct {
	Token     string
	UserID    int
	Username  string
	ExpiresAt time.Time
}

// FromToken builds a Session by inspecting the bearer token's claims.
// The signature belongs to the server and is not verified here; the client
// only needs the identity and expiry embedded in the token.
func FromToken(token string) (*Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("session: malformed token: %w", err)
	}

	s := &Session{Token: token}

	if sub, err := claims.GetSubject(); err == nil {
		s.Username = sub
	}
	if id, ok := claims["user_id"].(float64); ok {
		s.UserID = int(id)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}

	return s, nil
}

// Valid reports whether the session can still authenticate a call. A token
// without an exp claim is assumed live; the server remains the arbiter.
func (s *Session) Valid() bool {
	if s == nil || s.Token == "" {
		return false
	}
	if s.ExpiresAt.IsZero() {
		return true
	}
	return time.Now().Before(s.ExpiresAt)
}

// Bearer returns the Authorization header value for this session
func (s *Session) Bearer() string {
	return "Bearer " + s.Token
}
