// Package domain holds identity and session types plus signature verification
package domain

import "time"

// Status is the account lifecycle state gating all non public access
type Status string

// Account statuses
const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

// ParseStatus validates a status against the closed enumeration
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusActive, StatusBlocked:
		return Status(s), true
	}
	return "", false
}

// AccessLevel is the coarse authorization tier independent of status
type AccessLevel string

// Access levels
const (
	LevelAdmin AccessLevel = "admin"
	LevelTech  AccessLevel = "tech"
	LevelUser  AccessLevel = "user"
)

// ParseAccessLevel validates an access level against the closed enumeration
func ParseAccessLevel(s string) (AccessLevel, bool) {
	switch AccessLevel(s) {
	case LevelAdmin, LevelTech, LevelUser:
		return AccessLevel(s), true
	}
	return "", false
}

// RoleFor mirrors the legacy role column from the access level
func RoleFor(l AccessLevel) string {
	if l == LevelAdmin {
		return "admin"
	}
	return "user"
}

// Identity is a registered principal derived from a login assertion
type Identity struct {
	ID          int64
	Username    string
	FirstName   string
	LastName    string
	PhotoURL    string
	Role        string
	Status      Status
	AccessLevel AccessLevel
	CreatedAt   time.Time
	LastLoginAt *time.Time
}

// Session is a time bounded revocable capability bound to one identity
type Session struct {
	ID        string
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// ValidAt reports whether the session is unrevoked and unexpired at t
// persistence resolves validity in a single predicate, this is for in memory checks only
func (s Session) ValidAt(t time.Time) bool {
	return s.RevokedAt == nil && t.Before(s.ExpiresAt)
}
