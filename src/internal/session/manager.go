package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"gatepass-portal-svc/src/internal/config"
	"gatepass-portal-svc/src/internal/models"
)

const cacheKeyPattern = "session:%s"

// Manager owns the portal session lifecycle: Redis is consulted first, the
// Mongo record is the durable fallback, and a cache miss that resolves from
// Mongo rehydrates the cache. Absent, malformed or partial sessions are all
// reported as "no session" rather than as errors; a save/clear race is
// last-writer-wins.
type Manager struct {
	store Store
	repo  Repository
	ttl   time.Duration
}

func NewManager(store Store, repo Repository, cfg *config.Configuration) *Manager {
	return &Manager{
		store: store,
		repo:  repo,
		ttl:   time.Duration(cfg.Session.ExpirationMinutes) * time.Minute,
	}
}

// Save persists the session under the given portal session ID, overwriting
// any prior cache entry. Incomplete sessions are refused.
func (m *Manager) Save(ctx context.Context, sessionID string, session models.Session) error {
	if !session.Complete() {
		return models.ErrSessionInvalid
	}

	now := time.Now()
	record := &models.SessionRecord{
		SessionID:    sessionID,
		Session:      session,
		IsActive:     true,
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    now.Add(m.ttl),
	}

	if err := m.repo.Insert(ctx, record); err != nil {
		return err
	}

	if err := m.cache(ctx, record); err != nil {
		// The durable record exists; the cache will rehydrate on next load.
		logrus.WithError(err).WithField("session_id", sessionID).Warn("Failed to cache session after save")
	}

	logrus.WithFields(logrus.Fields{
		"session_id": sessionID,
		"email":      session.Email,
		"role":       session.Role,
	}).Debug("Session saved")

	return nil
}

// Load returns the session for the given ID, or (nil, nil) when there is no
// usable session. It never fails on absent or malformed data.
func (m *Manager) Load(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, nil
	}

	key := fmt.Sprintf(cacheKeyPattern, sessionID)

	data, err := m.store.Get(ctx, key)
	if err == nil {
		var record models.SessionRecord
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			logrus.WithError(err).WithField("session_id", sessionID).Warn("Malformed session cache entry, dropping")
			m.store.Delete(ctx, key)
		} else if record.Valid(time.Now()) {
			m.repo.UpdateActivity(ctx, sessionID)
			return &record.Session, nil
		} else {
			m.store.Delete(ctx, key)
		}
	} else if !errors.Is(err, models.ErrSessionNotFound) {
		logrus.WithError(err).WithField("session_id", sessionID).Warn("Session cache unavailable, falling back to database")
	}

	record, err := m.repo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !record.Valid(time.Now()) {
		logrus.WithField("session_id", sessionID).Debug("Session record no longer valid")
		return nil, nil
	}

	record.LastActiveAt = time.Now()
	m.repo.UpdateActivity(ctx, sessionID)
	if err := m.cache(ctx, record); err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Warn("Failed to rehydrate session cache")
	}

	return &record.Session, nil
}

// Clear removes the session unconditionally. It is idempotent: clearing an
// absent session is not an error.
func (m *Manager) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	key := fmt.Sprintf(cacheKeyPattern, sessionID)
	if err := m.store.Delete(ctx, key); err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Warn("Failed to drop session cache entry")
	}

	if err := m.repo.Deactivate(ctx, sessionID); err != nil {
		return err
	}

	logrus.WithField("session_id", sessionID).Debug("Session cleared")
	return nil
}

func (m *Manager) cache(ctx context.Context, record *models.SessionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	key := fmt.Sprintf(cacheKeyPattern, record.SessionID)
	return m.store.Set(ctx, key, string(data), ttl)
}
