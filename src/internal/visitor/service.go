package visitor

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"gatepass-portal-svc/src/clients"
	"gatepass-portal-svc/src/internal/models"
)

// Publisher emits activity events. A nil publisher disables them.
type Publisher interface {
	PublishActivity(msg models.ActivityMessage) error
}

type Service interface {
	ListForAdmin(ctx context.Context, search string) ([]Visitor, error)
	ListForGatekeeper(ctx context.Context, search string) ([]Visitor, error)
	CheckIn(ctx context.Context, form *Form) (*Visitor, error)
}

type service struct {
	backend  clients.API
	activity Publisher
	now      func() time.Time
}

func NewService(backend clients.API, activity Publisher) Service {
	return &service{
		backend:  backend,
		activity: activity,
		now:      time.Now,
	}
}

func (s *service) ListForAdmin(ctx context.Context, search string) ([]Visitor, error) {
	return s.list(ctx, "/admin/visitors", search)
}

func (s *service) ListForGatekeeper(ctx context.Context, search string) ([]Visitor, error) {
	return s.list(ctx, "/gatekeeper/visitors", search)
}

func (s *service) list(ctx context.Context, path, search string) ([]Visitor, error) {
	var visitors []Visitor
	if err := s.backend.Get(ctx, path, &visitors); err != nil {
		return nil, err
	}

	if search == "" {
		return visitors, nil
	}

	// The gatekeeper screen filters by name, phone or check-in time.
	query := strings.ToLower(search)
	filtered := make([]Visitor, 0, len(visitors))
	for _, v := range visitors {
		if strings.Contains(strings.ToLower(v.Name), query) ||
			strings.Contains(strings.ToLower(v.Phone), query) ||
			strings.Contains(strings.ToLower(v.Time), query) {
			filtered = append(filtered, v)
		}
	}

	return filtered, nil
}

// CheckIn registers a visitor, stamping the date and time from the portal's
// local clock.
func (s *service) CheckIn(ctx context.Context, form *Form) (*Visitor, error) {
	now := s.now()
	body := &payload{
		Name:       form.Name,
		Address:    form.Address,
		WhomToMeet: form.WhomToMeet,
		Phone:      form.Phone,
		Date:       now.Format(DateLayout),
		Time:       now.Format(TimeLayout),
	}

	var created Visitor
	if err := s.backend.Post(ctx, "/gatekeeper/visitors", body, &created); err != nil {
		return nil, err
	}

	if s.activity != nil {
		err := s.activity.PublishActivity(models.ActivityMessage{
			ServiceName: models.ServicePortalGatekeeper,
			Action:      models.ActionVisitorCheckIn,
			Metadata: map[string]string{
				"visitor_name": form.Name,
				"whom_to_meet": form.WhomToMeet,
			},
		})
		if err != nil {
			logrus.WithError(err).Warn("Failed to publish check-in activity")
		}
	}

	logrus.WithFields(logrus.Fields{
		"visitor": form.Name,
		"date":    body.Date,
		"time":    body.Time,
	}).Info("Visitor checked in")

	return &created, nil
}
