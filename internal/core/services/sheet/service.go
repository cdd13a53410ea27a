package sheet

import (
	"context"

	"gitlab.com/codelab.net/internal/domain"
)

type ISheetService interface {
	Create(ctx context.Context, sheet *domain.Sheet) error
	List(ctx context.Context, actor *domain.Users) ([]*domain.Sheet, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Sheet, error)
	Update(ctx context.Context, slug string, actor *domain.Users, title, description string, status domain.SheetStatus) error
	Delete(ctx context.Context, slug string, actor *domain.Users) error

	AddProblem(ctx context.Context, sheetSlug, problemSlug string, actor *domain.Users) error
	RemoveProblem(ctx context.Context, sheetSlug, problemSlug string, actor *domain.Users) error
}
