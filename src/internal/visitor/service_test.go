package visitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gatepass-portal-svc/src/internal/models"
)

type fakeAPI struct {
	visitors []Visitor
	lastBody interface{}
	calls    []string
}

func (f *fakeAPI) Get(ctx context.Context, path string, out interface{}) error {
	f.calls = append(f.calls, "GET "+path)
	*out.(*[]Visitor) = f.visitors
	return nil
}

func (f *fakeAPI) Post(ctx context.Context, path string, body, out interface{}) error {
	f.calls = append(f.calls, "POST "+path)
	f.lastBody = body
	return nil
}

func (f *fakeAPI) Put(ctx context.Context, path string, body, out interface{}) error {
	f.calls = append(f.calls, "PUT "+path)
	return nil
}

func (f *fakeAPI) Delete(ctx context.Context, path string) error {
	f.calls = append(f.calls, "DELETE "+path)
	return nil
}

type fakePublisher struct {
	published []models.ActivityMessage
}

func (f *fakePublisher) PublishActivity(msg models.ActivityMessage) error {
	f.published = append(f.published, msg)
	return nil
}

func TestCheckInStampsLocalClock(t *testing.T) {
	backend := &fakeAPI{}
	publisher := &fakePublisher{}
	svc := &service{
		backend:  backend,
		activity: publisher,
		now: func() time.Time {
			return time.Date(2025, 3, 9, 14, 5, 7, 0, time.Local)
		},
	}

	_, err := svc.CheckIn(context.Background(), &Form{
		Name:       "Ravi Kumar",
		Address:    "4 Lake View",
		WhomToMeet: "Jane Porter",
		Phone:      "555-0303",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"POST /gatekeeper/visitors"}, backend.calls)

	sent := backend.lastBody.(*payload)
	require.Equal(t, "2025-03-09", sent.Date)
	require.Equal(t, "14:05:07", sent.Time)
	require.Equal(t, "Ravi Kumar", sent.Name)

	require.Len(t, publisher.published, 1)
	require.Equal(t, models.ActionVisitorCheckIn, publisher.published[0].Action)
}

func TestListPathsPerRole(t *testing.T) {
	backend := &fakeAPI{}
	svc := NewService(backend, nil)

	_, err := svc.ListForAdmin(context.Background(), "")
	require.NoError(t, err)
	_, err = svc.ListForGatekeeper(context.Background(), "")
	require.NoError(t, err)

	require.Equal(t, []string{"GET /admin/visitors", "GET /gatekeeper/visitors"}, backend.calls)
}

func TestListFiltersByNamePhoneOrTime(t *testing.T) {
	backend := &fakeAPI{visitors: []Visitor{
		{Name: "Ravi Kumar", Phone: "555-0303", Time: "09:15:00"},
		{Name: "Lena Hart", Phone: "555-0404", Time: "14:30:12"},
		{Name: "Omar Aziz", Phone: "909-1515", Time: "18:45:59"},
	}}
	svc := NewService(backend, nil)

	cases := []struct {
		search string
		want   int
	}{
		{"", 3},
		{"ravi", 1},
		{"0404", 1},
		{"18:45", 1},
		{"15", 2}, // Ravi's check-in time and Omar's phone
		{"zzz", 0},
	}

	for _, tc := range cases {
		got, err := svc.ListForGatekeeper(context.Background(), tc.search)
		require.NoError(t, err)
		require.Len(t, got, tc.want, "search %q", tc.search)
	}
}
