package auth

import "gatepass-portal-svc/src/internal/models"

// Dashboard paths, dispatched on the role the backend returns.
const (
	AdminDashboardPath      = "/admin"
	GatekeeperDashboardPath = "/gatekeeper"
	LoginPagePath           = "/login"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin gatekeeper"`
}

// LoginResult is what a successful credential exchange produces: the saved
// session, the portal session ID backing the cookie, and the dashboard the
// user's role maps to.
type LoginResult struct {
	SessionID  string
	Session    models.Session
	RedirectTo string
}

// Meta carries request attribution into activity events.
type Meta struct {
	IPAddress string
	UserAgent string
}
