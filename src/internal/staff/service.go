package staff

import (
	"context"

	"gatepass-portal-svc/src/clients"
	"gatepass-portal-svc/src/internal/models"
)

type Service interface {
	Directory(ctx context.Context) (*Directory, error)
}

type service struct {
	backend clients.API
}

func NewService(backend clients.API) Service {
	return &service{backend: backend}
}

// Directory fetches every admin and gatekeeper account and partitions them
// by role.
func (s *service) Directory(ctx context.Context) (*Directory, error) {
	var accounts []Member
	if err := s.backend.Get(ctx, "/admin/all-admin-gatekeepers", &accounts); err != nil {
		return nil, err
	}

	directory := &Directory{
		Admins:      make([]Member, 0, len(accounts)),
		Gatekeepers: make([]Member, 0, len(accounts)),
	}

	for _, account := range accounts {
		switch account.Role {
		case models.RoleAdmin:
			directory.Admins = append(directory.Admins, account)
		case models.RoleGatekeeper:
			directory.Gatekeepers = append(directory.Gatekeepers, account)
		}
	}

	return directory, nil
}
