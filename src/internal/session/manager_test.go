package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gatepass-portal-svc/src/internal/config"
	"gatepass-portal-svc/src/internal/models"
)

type memStore struct {
	entries map[string]string
}

func newMemStore() *memStore {
	return &memStore{entries: map[string]string{}}
}

func (s *memStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.entries[key] = value
	return nil
}

func (s *memStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := s.entries[key]
	if !ok {
		return "", models.ErrSessionNotFound
	}
	return value, nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	delete(s.entries, key)
	return nil
}

type memRepo struct {
	records map[string]*models.SessionRecord
}

func newMemRepo() *memRepo {
	return &memRepo{records: map[string]*models.SessionRecord{}}
}

func (r *memRepo) Insert(ctx context.Context, record *models.SessionRecord) error {
	copied := *record
	r.records[record.SessionID] = &copied
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, sessionID string) (*models.SessionRecord, error) {
	record, ok := r.records[sessionID]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *memRepo) UpdateActivity(ctx context.Context, sessionID string) error {
	if record, ok := r.records[sessionID]; ok && record.IsActive {
		record.LastActiveAt = time.Now()
	}
	return nil
}

func (r *memRepo) Deactivate(ctx context.Context, sessionID string) error {
	if record, ok := r.records[sessionID]; ok {
		now := time.Now()
		record.IsActive = false
		record.LogoutAt = &now
	}
	return nil
}

func testSession() models.Session {
	return models.Session{
		Name:  "Jane Porter",
		Email: "jane@example.com",
		Role:  models.RoleAdmin,
		Token: "token-1",
	}
}

func newTestManager() (*Manager, *memStore, *memRepo) {
	store := newMemStore()
	repo := newMemRepo()
	cfg := &config.Configuration{
		Session: config.SessionSettings{ExpirationMinutes: 30},
	}
	return NewManager(store, repo, cfg), store, repo
}

func TestManagerSaveLoadRoundTrip(t *testing.T) {
	manager, _, _ := newTestManager()
	ctx := context.Background()
	session := testSession()

	require.NoError(t, manager.Save(ctx, "sid-1", session))

	loaded, err := manager.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, session, *loaded)
}

func TestManagerLoadWithoutSave(t *testing.T) {
	manager, _, _ := newTestManager()

	loaded, err := manager.Load(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestManagerLoadEmptyID(t *testing.T) {
	manager, _, _ := newTestManager()

	loaded, err := manager.Load(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestManagerClearRemovesSession(t *testing.T) {
	manager, _, _ := newTestManager()
	ctx := context.Background()

	require.NoError(t, manager.Save(ctx, "sid-1", testSession()))
	require.NoError(t, manager.Clear(ctx, "sid-1"))

	loaded, err := manager.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.Nil(t, loaded)

	// Clearing again is not an error.
	require.NoError(t, manager.Clear(ctx, "sid-1"))
}

func TestManagerSaveRejectsPartialSession(t *testing.T) {
	manager, _, _ := newTestManager()
	ctx := context.Background()

	partials := []models.Session{
		{Email: "jane@example.com", Role: models.RoleAdmin, Token: "t"},
		{Name: "Jane", Role: models.RoleAdmin, Token: "t"},
		{Name: "Jane", Email: "jane@example.com", Token: "t"},
		{Name: "Jane", Email: "jane@example.com", Role: models.RoleAdmin},
	}

	for _, partial := range partials {
		err := manager.Save(ctx, "sid-1", partial)
		require.ErrorIs(t, err, models.ErrSessionInvalid)
	}

	loaded, err := manager.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestManagerLoadFallsBackToRepository(t *testing.T) {
	manager, store, _ := newTestManager()
	ctx := context.Background()
	session := testSession()

	require.NoError(t, manager.Save(ctx, "sid-1", session))

	// Simulate a cache wipe; the durable record must still resolve.
	store.entries = map[string]string{}

	loaded, err := manager.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, session, *loaded)

	// The cache is rehydrated on the way out.
	require.NotEmpty(t, store.entries)
}

func TestManagerLoadDropsMalformedCacheEntry(t *testing.T) {
	manager, store, _ := newTestManager()
	ctx := context.Background()

	store.entries["session:sid-1"] = "{not json"

	loaded, err := manager.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.Nil(t, loaded)
	require.NotContains(t, store.entries, "session:sid-1")
}

func TestManagerLoadIgnoresExpiredRecord(t *testing.T) {
	manager, _, repo := newTestManager()
	ctx := context.Background()

	now := time.Now()
	repo.records["sid-1"] = &models.SessionRecord{
		SessionID:    "sid-1",
		Session:      testSession(),
		IsActive:     true,
		CreatedAt:    now.Add(-2 * time.Hour),
		LastActiveAt: now.Add(-2 * time.Hour),
		ExpiresAt:    now.Add(-time.Hour),
	}

	loaded, err := manager.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestManagerLoadIgnoresLoggedOutRecord(t *testing.T) {
	manager, _, repo := newTestManager()
	ctx := context.Background()

	now := time.Now()
	logout := now.Add(-time.Minute)
	repo.records["sid-1"] = &models.SessionRecord{
		SessionID:    "sid-1",
		Session:      testSession(),
		IsActive:     true,
		CreatedAt:    now.Add(-time.Hour),
		LastActiveAt: now.Add(-time.Minute),
		ExpiresAt:    now.Add(time.Hour),
		LogoutAt:     &logout,
	}

	loaded, err := manager.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.Nil(t, loaded)
}
