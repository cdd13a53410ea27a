package problem

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/domain"
)

// UpdateInformation is the editable problem-page subset
type UpdateInformation struct {
	Description string
	Difficulty  domain.Difficulty
	Tags        []string
	Examples    []domain.Example
	Constraints []string
	Hints       []string
}

type IProblemService interface {
	// Create validates every supplied reference solution against the
	// test cases through the judge before persisting the problem.
	Create(ctx context.Context, problem *domain.Problem) error

	List(ctx context.Context) ([]*domain.ProblemSummary, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Problem, error)

	UpdateInformation(ctx context.Context, slug string, actor *domain.Users, info UpdateInformation) error
	UpdateEditorial(ctx context.Context, slug string, actor *domain.Users, editorial domain.Editorial) error
	// UpdateTestCases re-validates all solutions against the new test
	// case set before persisting.
	UpdateTestCases(ctx context.Context, slug string, actor *domain.Users, testCases []domain.TestCase, codeInformations []domain.CodeInformation) error
	Delete(ctx context.Context, slug string, actor *domain.Users) error

	SolvedProblems(ctx context.Context, userID uuid.UUID) ([]*domain.ProblemSummary, error)
}
