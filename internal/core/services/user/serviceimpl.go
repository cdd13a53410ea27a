package user

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/ports/secondary"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/static/errs"
)

var _ IUserService = (*UserService)(nil)

// UserService implements the IUserService interface
type UserService struct {
	userPort secondary.UserPort
	logger   primary.Logger
}

// NewUserService creates a new user service
func NewUserService(userPort secondary.UserPort, logger primary.Logger) *UserService {
	return &UserService{
		userPort: userPort,
		logger:   logger,
	}
}

func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (*domain.Users, error) {
	usr, err := s.userPort.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, errs.NotFound
	}
	return usr, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.Users, error) {
	return s.userPort.List(ctx)
}

func (s *UserService) AssignRole(ctx context.Context, actor *domain.Users, id uuid.UUID, role domain.Role) error {
	if actor.Role != domain.RoleAdmin {
		return errs.Forbidden
	}
	usr, err := s.userPort.Get(ctx, id)
	if err != nil {
		return err
	}
	if usr == nil {
		return errs.NotFound
	}

	s.logger.Info("Assigning role", "user", id, "role", role)
	return s.userPort.UpdateRole(ctx, id, role)
}
