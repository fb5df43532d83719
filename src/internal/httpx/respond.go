// Package httpx maps the portal error taxonomy onto HTTP responses so that
// dashboard handlers stay render-on-error and never reimplement the
// session-expiry redirect.
package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gatepass-portal-svc/src/clients"
	"gatepass-portal-svc/src/internal/models"
)

// LoginPath is where every unauthenticated or de-authenticated request ends up.
const LoginPath = "/login"

const (
	serverErrorMessage  = "Server error. Try again."
	networkErrorMessage = "Network error. Please check your connection."
)

// AbortToLogin redirects the request to the login screen and stops the chain.
func AbortToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}

// RespondError converts a portal error into its dashboard response: expired
// sessions redirect to login, unreachable backends surface a network message,
// backend failures surface the backend's message when it sent one, and
// everything else is a generic server error.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrSessionExpired):
		AbortToLogin(c)

	case errors.Is(err, models.ErrBackendUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": networkErrorMessage})

	case errors.Is(err, models.ErrTooManyCars):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Parking limit exceeded: Maximum 4 cars allowed."})

	default:
		var httpErr *clients.HTTPError
		if errors.As(err, &httpErr) {
			message := httpErr.Message
			if message == "" {
				message = serverErrorMessage
			}
			c.JSON(httpErr.StatusCode, gin.H{"error": message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": serverErrorMessage})
	}
}
