package problem

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/ports/secondary"
	"gitlab.com/codelab.net/internal/core/services/judge"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/static/errs"
)

var _ IProblemService = (*ProblemService)(nil)

// ProblemService implements the IProblemService interface
type ProblemService struct {
	problemPort  secondary.ProblemPort
	judgeService judge.IJudgeService
	logger       primary.Logger
}

// NewProblemService creates a new problem service
func NewProblemService(problemPort secondary.ProblemPort, judgeService judge.IJudgeService, logger primary.Logger) *ProblemService {
	return &ProblemService{
		problemPort:  problemPort,
		judgeService: judgeService,
		logger:       logger,
	}
}

// Create validates all reference solutions and persists the problem
func (s *ProblemService) Create(ctx context.Context, problem *domain.Problem) error {
	existing, err := s.problemPort.GetByTitle(ctx, problem.Title)
	if err != nil {
		return fmt.Errorf("failed to check title: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("%w: problem with this title", errs.AlreadyExists)
	}

	if err := s.validateSolutions(ctx, problem.TestCases, problem.CodeInformations); err != nil {
		return err
	}

	problem.ID = uuid.New()
	problem.Slug = slug.Make(problem.Title)
	problem.CreatedAt = time.Now()
	problem.UpdatedAt = problem.CreatedAt

	if err := s.problemPort.Create(ctx, problem); err != nil {
		s.logger.Error("Failed to create problem", "title", problem.Title, "error", err)
		return fmt.Errorf("failed to create problem: %w", err)
	}

	s.logger.Info("Problem created", "slug", problem.Slug)
	return nil
}

// validateSolutions runs every reference solution through the judge and
// requires full acceptance. A rejected solution surfaces which test
// case and language failed.
func (s *ProblemService) validateSolutions(ctx context.Context, testCases []domain.TestCase, codeInformations []domain.CodeInformation) error {
	stdin := make([]string, len(testCases))
	expected := make([]string, len(testCases))
	for i, tc := range testCases {
		stdin[i] = tc.Input
		expected[i] = tc.Output
	}

	for _, codeInfo := range codeInformations {
		eval, err := s.judgeService.Evaluate(ctx, domain.EvaluationRequest{
			SourceCode:      codeInfo.Solution,
			Language:        codeInfo.Language,
			Stdin:           stdin,
			ExpectedOutputs: expected,
		})
		if err != nil {
			return err
		}
		for _, outcome := range eval.Outcomes {
			if !outcome.Passed {
				return fmt.Errorf("%w: test case %d failed for %s due to %s",
					errs.SolutionFailed, outcome.TestCase, codeInfo.Language, outcome.Status)
			}
		}
	}
	return nil
}

func (s *ProblemService) List(ctx context.Context) ([]*domain.ProblemSummary, error) {
	return s.problemPort.List(ctx)
}

func (s *ProblemService) GetBySlug(ctx context.Context, slug string) (*domain.Problem, error) {
	problem, err := s.problemPort.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, errs.NotFound
	}
	return problem, nil
}

func (s *ProblemService) UpdateInformation(ctx context.Context, slug string, actor *domain.Users, info UpdateInformation) error {
	problem, err := s.ownedProblem(ctx, slug, actor)
	if err != nil {
		return err
	}

	problem.Description = info.Description
	problem.Difficulty = info.Difficulty
	problem.Tags = info.Tags
	problem.Examples = info.Examples
	problem.Constraints = info.Constraints
	problem.Hints = info.Hints
	problem.UpdatedAt = time.Now()

	return s.problemPort.Update(ctx, problem)
}

func (s *ProblemService) UpdateEditorial(ctx context.Context, slug string, actor *domain.Users, editorial domain.Editorial) error {
	problem, err := s.ownedProblem(ctx, slug, actor)
	if err != nil {
		return err
	}

	problem.Editorial = &editorial
	problem.UpdatedAt = time.Now()

	return s.problemPort.Update(ctx, problem)
}

func (s *ProblemService) UpdateTestCases(ctx context.Context, slug string, actor *domain.Users, testCases []domain.TestCase, codeInformations []domain.CodeInformation) error {
	problem, err := s.ownedProblem(ctx, slug, actor)
	if err != nil {
		return err
	}

	if err := s.validateSolutions(ctx, testCases, codeInformations); err != nil {
		return err
	}

	problem.TestCases = testCases
	problem.CodeInformations = codeInformations
	problem.UpdatedAt = time.Now()

	return s.problemPort.Update(ctx, problem)
}

func (s *ProblemService) Delete(ctx context.Context, slug string, actor *domain.Users) error {
	problem, err := s.ownedProblem(ctx, slug, actor)
	if err != nil {
		return err
	}
	return s.problemPort.Delete(ctx, problem.ID)
}

func (s *ProblemService) SolvedProblems(ctx context.Context, userID uuid.UUID) ([]*domain.ProblemSummary, error) {
	return s.problemPort.SolvedProblems(ctx, userID)
}

// ownedProblem loads a problem and checks the actor may modify it:
// admins always, problem managers only for their own problems.
func (s *ProblemService) ownedProblem(ctx context.Context, slug string, actor *domain.Users) (*domain.Problem, error) {
	problem, err := s.problemPort.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, errs.NotFound
	}
	if actor.Role != domain.RoleAdmin && actor.ID != problem.CreatedBy {
		return nil, errs.Forbidden
	}
	return problem, nil
}
