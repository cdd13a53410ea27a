package submission

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/ports/secondary"
	"gitlab.com/codelab.net/internal/core/services/judge"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/static/errs"
)

var _ ISubmissionService = (*SubmissionService)(nil)

// SubmissionService implements the ISubmissionService interface
type SubmissionService struct {
	submissionPort secondary.SubmissionPort
	problemPort    secondary.ProblemPort
	judgeService   judge.IJudgeService
	logger         primary.Logger
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	submissionPort secondary.SubmissionPort,
	problemPort secondary.ProblemPort,
	judgeService judge.IJudgeService,
	logger primary.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissionPort: submissionPort,
		problemPort:    problemPort,
		judgeService:   judgeService,
		logger:         logger,
	}
}

// Run evaluates code without persisting anything
func (s *SubmissionService) Run(ctx context.Context, problemSlug, sourceCode, language string) (domain.Evaluation, error) {
	problem, err := s.problemPort.GetBySlug(ctx, problemSlug)
	if err != nil {
		return domain.Evaluation{}, err
	}
	if problem == nil {
		return domain.Evaluation{}, errs.NotFound
	}

	return s.evaluate(ctx, problem, sourceCode, language)
}

// Submit evaluates, persists, and records first acceptance
func (s *SubmissionService) Submit(ctx context.Context, userID uuid.UUID, problemSlug, sourceCode, language string) (*domain.Submission, error) {
	problem, err := s.problemPort.GetBySlug(ctx, problemSlug)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, errs.NotFound
	}

	eval, err := s.evaluate(ctx, problem, sourceCode, language)
	if err != nil {
		// judge infrastructure failures leave no trace: no submission
		// row, no solved-state change
		return nil, err
	}

	sub := domain.NewSubmission(userID, problem.ID, sourceCode, language, eval)
	if err := s.submissionPort.Save(ctx, sub); err != nil {
		s.logger.Error("Failed to save submission", "problem", problemSlug, "user", userID, "error", err)
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	if eval.Accepted() {
		// set-add semantics: safe against concurrent accepted
		// submissions for the same pair
		if err := s.problemPort.MarkSolved(ctx, userID, problem.ID); err != nil {
			s.logger.Error("Failed to mark problem solved", "problem", problemSlug, "user", userID, "error", err)
			return nil, fmt.Errorf("failed to record solved state: %w", err)
		}
	}

	s.logger.Info("Submission recorded", "submission", sub.ID, "verdict", sub.Status)
	return sub, nil
}

func (s *SubmissionService) evaluate(ctx context.Context, problem *domain.Problem, sourceCode, language string) (domain.Evaluation, error) {
	testCases := problem.TestCases
	stdin := make([]string, len(testCases))
	expected := make([]string, len(testCases))
	for i, tc := range testCases {
		stdin[i] = tc.Input
		expected[i] = tc.Output
	}

	return s.judgeService.Evaluate(ctx, domain.EvaluationRequest{
		SourceCode:      sourceCode,
		Language:        language,
		Stdin:           stdin,
		ExpectedOutputs: expected,
	})
}

func (s *SubmissionService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Submission, error) {
	sub, err := s.submissionPort.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, errs.NotFound
	}
	if sub.UserID != userID {
		return nil, errs.Forbidden
	}
	return sub, nil
}

func (s *SubmissionService) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	return s.submissionPort.ListByUser(ctx, userID)
}
