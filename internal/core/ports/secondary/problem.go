package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/domain"
)

type ProblemPort interface {
	Create(ctx context.Context, problem *domain.Problem) error
	GetBySlug(ctx context.Context, slug string) (*domain.Problem, error)
	GetByTitle(ctx context.Context, title string) (*domain.Problem, error)
	List(ctx context.Context) ([]*domain.ProblemSummary, error)
	Update(ctx context.Context, problem *domain.Problem) error
	Delete(ctx context.Context, id uuid.UUID) error

	// MarkSolved records a first acceptance for (user, problem). The
	// insert is idempotent: concurrent accepted submissions for the same
	// pair leave exactly one row behind.
	MarkSolved(ctx context.Context, userID, problemID uuid.UUID) error
	SolvedProblems(ctx context.Context, userID uuid.UUID) ([]*domain.ProblemSummary, error)
	Solvers(ctx context.Context, problemID uuid.UUID) ([]uuid.UUID, error)
	IsSolved(ctx context.Context, userID, problemID uuid.UUID) (bool, error)
}
