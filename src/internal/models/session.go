package models

import "time"

// Role constants. These are the only roles the backend issues; anything
// else is rejected loudly instead of being lumped in with gatekeepers.
const (
	RoleAdmin      = "admin"
	RoleGatekeeper = "gatekeeper"
)

// KnownRole reports whether role is one of the recognised role values.
func KnownRole(role string) bool {
	return role == RoleAdmin || role == RoleGatekeeper
}

// Session is the authenticated identity returned by the backend on login.
// A session is either entirely absent or carries all four fields; partial
// sessions are never handed to callers.
type Session struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Role  string `json:"role" bson:"role"`
	Token string `json:"token" bson:"token"`
}

// Complete reports whether every field of the session is populated.
func (s *Session) Complete() bool {
	return s != nil && s.Name != "" && s.Email != "" && s.Role != "" && s.Token != ""
}

// SessionRecord is the persisted envelope around a Session. Records live in
// the session collection and are cached in Redis under the portal session ID.
type SessionRecord struct {
	SessionID    string     `json:"session_id" bson:"session_id"`
	Session      Session    `json:"session" bson:"session"`
	IsActive     bool       `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	LastActiveAt time.Time  `json:"last_active_at" bson:"last_active_at"`
	ExpiresAt    time.Time  `json:"expires_at" bson:"expires_at"`
	LogoutAt     *time.Time `json:"logout_at,omitempty" bson:"logout_at,omitempty"`
}

// Valid reports whether the record still represents a usable session.
func (r *SessionRecord) Valid(now time.Time) bool {
	if r == nil || !r.IsActive || r.LogoutAt != nil {
		return false
	}
	if now.After(r.ExpiresAt) {
		return false
	}
	return r.Session.Complete()
}
