package judge

import (
	"context"

	"gitlab.com/codelab.net/internal/domain"
)

// IJudgeService turns one evaluation request into a verdict, hiding the
// asynchronous batch submit/poll protocol of the remote judge behind a
// single blocking call.
type IJudgeService interface {
	// Evaluate submits one batch (one entry per test case), polls until
	// every entry reaches a terminal status and reduces the raw results
	// into per-test-case outcomes plus an aggregate verdict.
	//
	// Failure taxonomy (matched with errors.Is against static/errs):
	// MalformedRequest, UnsupportedLanguage, JudgeUnavailable,
	// JudgeTimeout. Per-test-case failures are not errors; they fold
	// into the verdict.
	Evaluate(ctx context.Context, req domain.EvaluationRequest) (domain.Evaluation, error)
}
