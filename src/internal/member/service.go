package member

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"gatepass-portal-svc/src/clients"
	"gatepass-portal-svc/src/internal/models"
)

type Service interface {
	List(ctx context.Context, search string) ([]Member, error)
	Create(ctx context.Context, form *Form) error
	Update(ctx context.Context, id string, form *Form) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	backend clients.API
}

func NewService(backend clients.API) Service {
	return &service{backend: backend}
}

// List fetches the member roster and applies the dashboard's substring
// filter over name, member ID and phone.
func (s *service) List(ctx context.Context, search string) ([]Member, error) {
	var members []Member
	if err := s.backend.Get(ctx, "/admin/members", &members); err != nil {
		return nil, err
	}

	if search == "" {
		return members, nil
	}

	query := strings.ToLower(search)
	filtered := make([]Member, 0, len(members))
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Name), query) ||
			strings.Contains(strings.ToLower(m.MemberID), query) ||
			strings.Contains(strings.ToLower(m.Phone), query) {
			filtered = append(filtered, m)
		}
	}

	return filtered, nil
}

func (s *service) Create(ctx context.Context, form *Form) error {
	body, err := s.buildPayload(form)
	if err != nil {
		return err
	}

	if err := s.backend.Post(ctx, "/admin/members", body, nil); err != nil {
		return err
	}

	logrus.WithField("member_id", form.MemberID).Info("Member created")
	return nil
}

func (s *service) Update(ctx context.Context, id string, form *Form) error {
	body, err := s.buildPayload(form)
	if err != nil {
		return err
	}

	if err := s.backend.Put(ctx, "/admin/members/"+id, body, nil); err != nil {
		return err
	}

	logrus.WithField("member_id", form.MemberID).Info("Member updated")
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.backend.Delete(ctx, "/admin/members/"+id); err != nil {
		return err
	}

	logrus.WithField("id", id).Info("Member deleted")
	return nil
}

// buildPayload splits the comma-separated car list and enforces the parking
// limit locally; an over-limit form never reaches the backend.
func (s *service) buildPayload(form *Form) (*payload, error) {
	cars := SplitCars(form.Cars)
	if len(cars) > MaxCars {
		return nil, models.ErrTooManyCars
	}

	return &payload{
		Name:     form.Name,
		Address:  form.Address,
		Phone:    form.Phone,
		MemberID: form.MemberID,
		Cars:     cars,
	}, nil
}

// SplitCars turns the form's comma-separated car numbers into a trimmed
// list, dropping empty entries.
func SplitCars(raw string) []string {
	parts := strings.Split(raw, ",")
	cars := make([]string, 0, len(parts))
	for _, part := range parts {
		car := strings.TrimSpace(part)
		if car != "" {
			cars = append(cars, car)
		}
	}
	return cars
}
