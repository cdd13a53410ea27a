package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/domain"
)

type SheetPort interface {
	Create(ctx context.Context, sheet *domain.Sheet) error
	GetBySlug(ctx context.Context, slug string) (*domain.Sheet, error)
	List(ctx context.Context, includePrivate bool) ([]*domain.Sheet, error)
	Update(ctx context.Context, sheet *domain.Sheet) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddProblem(ctx context.Context, sheetID, problemID uuid.UUID) error
	RemoveProblem(ctx context.Context, sheetID, problemID uuid.UUID) error
}
