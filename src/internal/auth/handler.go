package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gatepass-portal-svc/src/clients"
	"gatepass-portal-svc/src/internal/config"
	"gatepass-portal-svc/src/internal/models"
)

const (
	credentialsRequiredMessage = "Both email and password are required"
	loginFailedMessage         = "Login Failed. Please check your credentials"
	signupFailedMessage        = "An error occurred during signup"
	networkErrorMessage        = "Network error. Please check your connection."
)

type Handler interface {
	Login(c *gin.Context)
	Signup(c *gin.Context)
	Logout(c *gin.Context)
}

type handler struct {
	config  *config.Configuration
	service Service
}

func NewHandler(cfg *config.Configuration, service Service) Handler {
	return &handler{
		config:  cfg,
		service: service,
	}
}

func (h *handler) Login(c *gin.Context) {
	var req LoginRequest
	// The presence check runs before any backend call; an empty field never
	// leaves the portal.
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": credentialsRequiredMessage})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	meta := Meta{IPAddress: c.ClientIP(), UserAgent: c.Request.UserAgent()}

	result, err := h.service.Login(ctx, &req, meta)
	if err != nil {
		h.respondLoginError(c, err)
		return
	}

	maxAge := h.config.Session.ExpirationMinutes * 60
	c.SetCookie(h.config.Session.CookieName, result.SessionID, maxAge, "/", "", h.config.Session.CookieSecure, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"redirect_to": result.RedirectTo,
			"user": gin.H{
				"name":  result.Session.Name,
				"email": result.Session.Email,
				"role":  result.Session.Role,
			},
		},
		"message": "Login successful",
	})
}

func (h *handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Name, email, password and a valid role are required"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.service.Signup(ctx, &req); err != nil {
		status := http.StatusInternalServerError
		var httpErr *clients.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.StatusCode
		} else if errors.Is(err, models.ErrBackendUnavailable) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": signupFailedMessage})
		return
	}

	// Signup never establishes a session; the user logs in next.
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"redirect_to": LoginPagePath},
		"message": "Signup successful, please log in",
	})
}

func (h *handler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(h.config.Session.CookieName)
	if err == nil && sessionID != "" {
		ctx, cancel := h.requestContext(c)
		defer cancel()

		meta := Meta{IPAddress: c.ClientIP(), UserAgent: c.Request.UserAgent()}
		if err := h.service.Logout(ctx, sessionID, meta); err != nil {
			logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to clear session on logout")
		}
	}

	c.SetCookie(h.config.Session.CookieName, "", -1, "/", "", h.config.Session.CookieSecure, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"redirect_to": LoginPagePath},
		"message": "Logged out",
	})
}

func (h *handler) respondLoginError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrUnknownRole):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unrecognized role returned by the backend"})

	case errors.Is(err, models.ErrSessionInvalid):
		c.JSON(http.StatusBadGateway, gin.H{"error": loginFailedMessage})

	case errors.Is(err, models.ErrBackendUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": networkErrorMessage})

	default:
		var httpErr *clients.HTTPError
		if errors.As(err, &httpErr) {
			message := httpErr.Message
			if message == "" {
				message = loginFailedMessage
			}
			c.JSON(httpErr.StatusCode, gin.H{"error": message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": loginFailedMessage})
	}
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}
