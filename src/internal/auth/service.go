package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gatepass-portal-svc/src/clients"
	"gatepass-portal-svc/src/internal/models"
)

// Sessions is the slice of the session manager the auth flow writes through.
type Sessions interface {
	Save(ctx context.Context, sessionID string, session models.Session) error
	Clear(ctx context.Context, sessionID string) error
}

// Publisher emits activity events. A nil publisher disables them.
type Publisher interface {
	PublishActivity(msg models.ActivityMessage) error
}

type Service interface {
	Login(ctx context.Context, req *LoginRequest, meta Meta) (*LoginResult, error)
	Signup(ctx context.Context, req *SignupRequest) error
	Logout(ctx context.Context, sessionID string, meta Meta) error
}

type service struct {
	backend  clients.API
	sessions Sessions
	activity Publisher
}

func NewService(backend clients.API, sessions Sessions, activity Publisher) Service {
	return &service{
		backend:  backend,
		sessions: sessions,
		activity: activity,
	}
}

// Login exchanges credentials with the backend; the response body becomes the
// session verbatim. The role dispatch is an exhaustive match: anything other
// than admin or gatekeeper is an error, never a silent gatekeeper fallback.
func (s *service) Login(ctx context.Context, req *LoginRequest, meta Meta) (*LoginResult, error) {
	var session models.Session
	if err := s.backend.Post(ctx, "/auth/login", req, &session); err != nil {
		logrus.WithError(err).WithField("email", req.Email).Warn("Login rejected")
		return nil, err
	}

	if !session.Complete() {
		logrus.WithField("email", req.Email).Error("Backend returned a partial session")
		return nil, models.ErrSessionInvalid
	}

	var redirectTo string
	switch session.Role {
	case models.RoleAdmin:
		redirectTo = AdminDashboardPath
	case models.RoleGatekeeper:
		redirectTo = GatekeeperDashboardPath
	default:
		logrus.WithFields(logrus.Fields{
			"email": session.Email,
			"role":  session.Role,
		}).Error("Backend returned unrecognized role")
		return nil, models.ErrUnknownRole
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Save(ctx, sessionID, session); err != nil {
		return nil, err
	}

	s.publish(models.ActivityMessage{
		SessionID:   sessionID,
		Email:       session.Email,
		Role:        session.Role,
		ServiceName: models.ServicePortalAuth,
		Action:      models.ActionLogin,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
	})

	logrus.WithFields(logrus.Fields{
		"email":       session.Email,
		"role":        session.Role,
		"redirect_to": redirectTo,
	}).Info("User logged in")

	return &LoginResult{
		SessionID:  sessionID,
		Session:    session,
		RedirectTo: redirectTo,
	}, nil
}

// Signup forwards the registration to the backend. Success does not establish
// a session; the user logs in afterwards.
func (s *service) Signup(ctx context.Context, req *SignupRequest) error {
	if err := s.backend.Post(ctx, "/auth/signup", req, nil); err != nil {
		logrus.WithError(err).WithField("email", req.Email).Warn("Signup failed")
		return err
	}

	s.publish(models.ActivityMessage{
		Email:       req.Email,
		Role:        req.Role,
		ServiceName: models.ServicePortalAuth,
		Action:      models.ActionSignup,
	})

	logrus.WithFields(logrus.Fields{
		"email": req.Email,
		"role":  req.Role,
	}).Info("User signed up")

	return nil
}

// Logout clears the session; clearing an absent session is fine.
func (s *service) Logout(ctx context.Context, sessionID string, meta Meta) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return err
	}

	s.publish(models.ActivityMessage{
		SessionID:   sessionID,
		ServiceName: models.ServicePortalAuth,
		Action:      models.ActionLogout,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
	})

	return nil
}

func (s *service) publish(msg models.ActivityMessage) {
	if s.activity == nil {
		return
	}
	if err := s.activity.PublishActivity(msg); err != nil {
		logrus.WithError(err).WithField("action", msg.Action).Warn("Failed to publish activity event")
	}
}
