package user

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/domain"
)

type IUserService interface {
	Profile(ctx context.Context, id uuid.UUID) (*domain.Users, error)
	List(ctx context.Context) ([]*domain.Users, error)
	AssignRole(ctx context.Context, actor *domain.Users, id uuid.UUID, role domain.Role) error
}
