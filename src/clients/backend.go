package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"gatepass-portal-svc/src/internal/config"
	"gatepass-portal-svc/src/internal/models"
)

// SessionSource supplies the session attached to outgoing backend calls and
// is asked to clear it when the backend reports the token invalid.
type SessionSource interface {
	Load(ctx context.Context, sessionID string) (*models.Session, error)
	Clear(ctx context.Context, sessionID string) error
}

// HTTPError is a non-2xx backend response, with the message extracted from
// the response body when one was provided.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

type sessionIDKey struct{}

// WithSessionID stamps the portal session ID onto the context so the backend
// client can look up the bearer token for the request.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

// SessionIDFromContext returns the portal session ID, or "" when the request
// is unauthenticated.
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}

// Publisher pushes activity events for actions the client takes on its own,
// such as forcing a sign-out after the backend rejects a token.
type Publisher interface {
	PublishActivity(msg models.ActivityMessage) error
}

// Backend is the HTTP client for the remote visitor/member REST API. Every
// request carries a JSON content type and, when the context names a session
// with a non-empty token, an Authorization bearer header. A 401 on a call
// that carried a session clears that session and surfaces
// models.ErrSessionExpired, so call sites never reimplement the check; a 401
// on an unauthenticated call (a credential rejection on login) stays an
// ordinary *HTTPError with the backend's message.
type Backend struct {
	baseURL    string
	httpClient *http.Client
	sessions   SessionSource
	activity   Publisher
}

// NewBackend creates a client for the backend REST API. activity may be nil
// when no event stream is wired.
func NewBackend(cfg *config.Configuration, sessions SessionSource, activity Publisher) *Backend {
	return &Backend{
		baseURL:  cfg.Backend.URL,
		sessions: sessions,
		activity: activity,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Backend.Timeout) * time.Second,
		},
	}
}

// API is the verb surface the portal services consume.
type API interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error
}

func (c *Backend) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Backend) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Backend) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Backend) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Backend) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	sessionID := SessionIDFromContext(ctx)
	var session *models.Session
	if sessionID != "" {
		if loaded, err := c.sessions.Load(ctx, sessionID); err == nil && loaded != nil {
			session = loaded
			if session.Token != "" {
				req.Header.Set("Authorization", "Bearer "+session.Token)
			}
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).Error("Backend call failed")
		return fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	// A 401 means session expiry only when the call actually carried a
	// session. Without one there is no token to reject, so the response
	// falls through to the generic path and keeps its message.
	if resp.StatusCode == http.StatusUnauthorized && sessionID != "" {
		if err := c.sessions.Clear(ctx, sessionID); err != nil {
			logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to clear session after 401")
		}
		c.publishForcedLogout(sessionID, session)
		logrus.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).Warn("Backend rejected token, session cleared")
		return models.ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Message string `json:"message"`
		}
		// Body decode is best-effort; a missing message yields a generic error.
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &HTTPError{StatusCode: resp.StatusCode, Message: payload.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// publishForcedLogout records a token-rejection sign-out on the activity
// stream. Publishing is best-effort; the sign-out stands either way.
func (c *Backend) publishForcedLogout(sessionID string, session *models.Session) {
	if c.activity == nil {
		return
	}

	msg := models.ActivityMessage{
		SessionID:   sessionID,
		ServiceName: models.ServicePortalAuth,
		Action:      models.ActionForcedLogout,
	}
	if session != nil {
		msg.Email = session.Email
		msg.Role = session.Role
	}

	if err := c.activity.PublishActivity(msg); err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to publish forced logout activity")
	}
}
