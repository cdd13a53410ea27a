package judge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gitlab.com/codelab.net/internal/adapter/judge0"
	"gitlab.com/codelab.net/internal/config"
	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/ports/secondary"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/static/errs"
)

var _ IJudgeService = (*JudgeService)(nil)

// JudgeService implements the IJudgeService interface
type JudgeService struct {
	remoteJudge     secondary.RemoteJudge
	logger          primary.Logger
	pollInterval    time.Duration
	maxPollAttempts int
}

// NewJudgeService creates a new judge service
func NewJudgeService(remoteJudge secondary.RemoteJudge, logger primary.Logger, cfg *config.JudgeConfig) *JudgeService {
	return &JudgeService{
		remoteJudge:     remoteJudge,
		logger:          logger,
		pollInterval:    cfg.PollInterval,
		maxPollAttempts: cfg.MaxPollAttempts,
	}
}

// Evaluate runs one request through submit, poll and reconcile
func (s *JudgeService) Evaluate(ctx context.Context, req domain.EvaluationRequest) (domain.Evaluation, error) {
	if len(req.Stdin) != len(req.ExpectedOutputs) {
		return domain.Evaluation{}, fmt.Errorf("%w: %d inputs, %d expected outputs",
			errs.MalformedRequest, len(req.Stdin), len(req.ExpectedOutputs))
	}
	if len(req.Stdin) == 0 {
		return domain.Evaluation{}, fmt.Errorf("%w: no test cases", errs.MalformedRequest)
	}

	languageID, ok := judge0.LanguageID(req.Language)
	if !ok {
		return domain.Evaluation{}, fmt.Errorf("%w: %q", errs.UnsupportedLanguage, req.Language)
	}

	submissions := make([]domain.BatchSubmission, len(req.Stdin))
	for i, stdin := range req.Stdin {
		submissions[i] = domain.BatchSubmission{
			SourceCode:     req.SourceCode,
			LanguageID:     languageID,
			Stdin:          stdin,
			ExpectedOutput: req.ExpectedOutputs[i],
		}
	}

	tokens, err := s.remoteJudge.SubmitBatch(ctx, submissions)
	if err != nil {
		s.logger.Error("Failed to submit batch", "language", req.Language, "testCases", len(submissions), "error", err)
		return domain.Evaluation{}, err
	}

	results, err := s.pollBatch(ctx, tokens)
	if err != nil {
		return domain.Evaluation{}, err
	}

	return reduce(req, results), nil
}

// pollBatch fetches all tokens until every result is terminal. The loop
// is bounded by maxPollAttempts and by the context; the sleep between
// attempts is cancellable.
func (s *JudgeService) pollBatch(ctx context.Context, tokens []string) ([]domain.RawJudgeResult, error) {
	for attempt := 1; ; attempt++ {
		results, err := s.remoteJudge.FetchBatch(ctx, tokens)
		if err != nil {
			if ctxErr := ctxFailure(ctx); ctxErr != nil {
				return nil, ctxErr
			}
			s.logger.Error("Failed to fetch batch results", "attempt", attempt, "error", err)
			return nil, err
		}

		if allTerminal(results) {
			return results, nil
		}

		if attempt >= s.maxPollAttempts {
			s.logger.Warn("Abandoning poll loop", "attempts", attempt, "tokens", len(tokens))
			return nil, fmt.Errorf("%w: gave up after %d attempts", errs.JudgeTimeout, attempt)
		}

		select {
		case <-ctx.Done():
			return nil, ctxFailure(ctx)
		case <-time.After(s.pollInterval):
		}
	}
}

func allTerminal(results []domain.RawJudgeResult) bool {
	for _, result := range results {
		if !judge0.IsTerminal(result.StatusID) {
			return false
		}
	}
	return true
}

// ctxFailure maps a finished context to the evaluation error taxonomy:
// an expired deadline means the judge was too slow, a cancellation
// propagates as-is so the caller can tell a disconnect from a timeout.
func ctxFailure(ctx context.Context) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", errs.JudgeTimeout, ctx.Err())
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return nil
	}
}

// reduce derives outcomes and the aggregate verdict. Outcome i always
// corresponds to stdin/expected pair i; the remote judge guarantees
// token order matches submission order and result order matches token
// order.
func reduce(req domain.EvaluationRequest, results []domain.RawJudgeResult) domain.Evaluation {
	outcomes := make([]domain.TestCaseOutcome, len(results))
	verdict := domain.VerdictAccepted

	for i, result := range results {
		passed := result.StatusID == judge0.StatusAccepted &&
			strings.TrimSpace(result.Stdout) == strings.TrimSpace(req.ExpectedOutputs[i])

		outcomes[i] = domain.TestCaseOutcome{
			TestCase:       i + 1,
			Passed:         passed,
			Stdin:          req.Stdin[i],
			Stdout:         result.Stdout,
			ExpectedOutput: req.ExpectedOutputs[i],
			Stderr:         result.Stderr,
			CompileOutput:  result.CompileOutput,
			Memory:         result.Memory,
			Time:           result.Time,
			Status:         judge0.StatusLabel(result.StatusID),
		}

		// first failing test case decides the failure category
		if !passed && verdict == domain.VerdictAccepted {
			verdict = failureVerdict(result.StatusID)
		}
	}

	return domain.Evaluation{Outcomes: outcomes, Verdict: verdict}
}

func failureVerdict(statusID int) domain.Verdict {
	switch {
	case statusID == judge0.StatusCompilationError:
		return domain.VerdictCompileError
	case judge0.IsRuntimeError(statusID):
		return domain.VerdictRuntimeError
	case statusID == judge0.StatusTimeLimitExceeded:
		return domain.VerdictTimeLimitExceeded
	default:
		return domain.VerdictWrongAnswer
	}
}
