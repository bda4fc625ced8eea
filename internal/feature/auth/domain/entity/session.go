package entity

import "time"

// Session is one login's refresh credential. The ID doubles as the refresh
// token handed to the client; UserAgent and IPAddress are kept for auditing.
type Session struct {
	ID        string
	UserID    uint
	UserAgent string
	IPAddress string
	CreatedAt time.Time
	ExpiresAt time.Time

	// RevokedAt is nil while the session is usable. Logout and refresh
	// rotation set it instead of deleting the row, so revocations stay
	// auditable.
	RevokedAt *time.Time
}

// IsExpired reports whether ExpiresAt has passed.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsRevoked reports whether the session was explicitly revoked.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid reports whether the session can still be redeemed for new tokens.
func (s *Session) IsValid() bool {
	return !s.IsExpired() && !s.IsRevoked()
}

// RemainingTTL is how long the session has left before expiry, never
// negative. Stores with native expiry use it as the record TTL.
func (s *Session) RemainingTTL() time.Duration {
	ttl := time.Until(s.ExpiresAt)
	if ttl < 0 {
		return 0
	}
	return ttl
}
