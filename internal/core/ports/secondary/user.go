package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/domain"
)

type UserPort interface {
	Create(ctx context.Context, user *domain.Users) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Users, error)
	GetByEmail(ctx context.Context, email string) (*domain.Users, error)
	GetByUserName(ctx context.Context, userName string) (*domain.Users, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.Users, error)
	List(ctx context.Context) ([]*domain.Users, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
