package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"gatepass-portal-svc/src/clients"
	"gatepass-portal-svc/src/internal/config"
	"gatepass-portal-svc/src/internal/httpx"
	"gatepass-portal-svc/src/internal/models"
)

// SessionManager is the slice of the session manager the guard needs.
type SessionManager interface {
	Load(ctx context.Context, sessionID string) (*models.Session, error)
	Clear(ctx context.Context, sessionID string) error
}

// AuthMiddleware guards the dashboard routes. It runs on every request to a
// protected group, not just at startup, because the session can change
// between navigations.
type AuthMiddleware struct {
	cookieName string
	jwtSecret  string
	sessions   SessionManager
}

func NewAuthMiddleware(cfg *config.Configuration, sessions SessionManager) *AuthMiddleware {
	return &AuthMiddleware{
		cookieName: cfg.Session.CookieName,
		jwtSecret:  cfg.Security.JwtKey,
		sessions:   sessions,
	}
}

// RequireSession resolves the portal session cookie into a session. Requests
// without a usable session are redirected to the login screen. When a JWT key
// is configured the bearer token's signature and expiry are checked locally,
// so stale sessions are cleared without waiting for a backend 401.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(m.cookieName)
		if err != nil || sessionID == "" {
			httpx.AbortToLogin(c)
			return
		}

		session, err := m.sessions.Load(c.Request.Context(), sessionID)
		if err != nil {
			logrus.WithError(err).Error("Session lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Session validation error",
			})
			c.Abort()
			return
		}

		if session == nil {
			httpx.AbortToLogin(c)
			return
		}

		if m.jwtSecret != "" {
			if err := m.validateToken(session.Token); err != nil {
				logrus.WithError(err).WithField("session_id", sessionID).Warn("Bearer token no longer valid, clearing session")
				if err := m.sessions.Clear(c.Request.Context(), sessionID); err != nil {
					logrus.WithError(err).Error("Failed to clear session with invalid token")
				}
				httpx.AbortToLogin(c)
				return
			}
		}

		c.Set("session_id", sessionID)
		c.Set("user_name", session.Name)
		c.Set("user_email", session.Email)
		c.Set("user_role", session.Role)

		// The backend client picks the bearer token up through the request
		// context.
		ctx := clients.WithSessionID(c.Request.Context(), sessionID)
		c.Request = c.Request.WithContext(ctx)

		logrus.WithFields(logrus.Fields{
			"session_id": sessionID,
			"user_role":  session.Role,
		}).Debug("Session resolved")

		c.Next()
	}
}

// RequireRole renders the protected group only for sessions carrying exactly
// the required role. A role mismatch is handled the same way as a missing
// session: redirect to login, not a dedicated unauthorized page.
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoleValue, exists := c.Get("user_role")
		if !exists {
			logrus.Error("User role not found in context - ensure RequireSession runs first")
			httpx.AbortToLogin(c)
			return
		}

		userRole, ok := userRoleValue.(string)
		if !ok {
			logrus.Error("Invalid user role format")
			httpx.AbortToLogin(c)
			return
		}

		if !models.KnownRole(userRole) {
			logrus.WithError(models.ErrUnknownRole).WithField("user_role", userRole).Error("Session carries unrecognized role")
			httpx.AbortToLogin(c)
			return
		}

		if userRole != role {
			email, _ := c.Get("user_email")
			logrus.WithFields(logrus.Fields{
				"user_email":    email,
				"user_role":     userRole,
				"required_role": role,
			}).Warn("Role mismatch on protected route")
			httpx.AbortToLogin(c)
			return
		}

		c.Next()
	}
}

// validateToken checks the bearer token's signature and expiry against the
// key shared with the backend.
func (m *AuthMiddleware) validateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(m.jwtSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return errors.New("token expired")
		}
		return errors.New("invalid token")
	}

	if !token.Valid {
		return errors.New("invalid token")
	}

	return nil
}
