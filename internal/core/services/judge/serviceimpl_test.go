package judge

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gitlab.com/codelab.net/internal/config"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/static/errs"
)

type fakeRemoteJudge struct {
	submitErr   error
	fetchErr    error
	fetchRounds [][]domain.RawJudgeResult
	submitCalls int
	fetchCalls  int
	submitted   []domain.BatchSubmission
}

func (f *fakeRemoteJudge) SubmitBatch(ctx context.Context, submissions []domain.BatchSubmission) ([]string, error) {
	f.submitCalls++
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = submissions
	tokens := make([]string, len(submissions))
	for i := range submissions {
		tokens[i] = fmt.Sprintf("token-%d", i)
	}
	return tokens, nil
}

func (f *fakeRemoteJudge) FetchBatch(ctx context.Context, tokens []string) ([]domain.RawJudgeResult, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	round := f.fetchCalls - 1
	if round >= len(f.fetchRounds) {
		round = len(f.fetchRounds) - 1
	}
	return f.fetchRounds[round], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

func newTestService(remote *fakeRemoteJudge) *JudgeService {
	return NewJudgeService(remote, nopLogger{}, &config.JudgeConfig{
		PollInterval:    time.Millisecond,
		MaxPollAttempts: 5,
	})
}

func accepted(stdout string) domain.RawJudgeResult {
	return domain.RawJudgeResult{StatusID: 3, Stdout: stdout, Time: "0.01", Memory: "1024"}
}

func threeCaseRequest() domain.EvaluationRequest {
	return domain.EvaluationRequest{
		SourceCode:      "print(input())",
		Language:        "python",
		Stdin:           []string{"1", "2", "3"},
		ExpectedOutputs: []string{"1", "2", "3"},
	}
}

func TestEvaluateLengthMismatch(t *testing.T) {
	remote := &fakeRemoteJudge{}
	svc := newTestService(remote)

	_, err := svc.Evaluate(context.Background(), domain.EvaluationRequest{
		SourceCode:      "x",
		Language:        "python",
		Stdin:           []string{"1", "2"},
		ExpectedOutputs: []string{"1"},
	})
	if !errors.Is(err, errs.MalformedRequest) {
		t.Fatalf("expected MalformedRequest, got %v", err)
	}
	if remote.submitCalls != 0 || remote.fetchCalls != 0 {
		t.Fatalf("remote judge must not be called on malformed request")
	}
}

func TestEvaluateUnsupportedLanguage(t *testing.T) {
	remote := &fakeRemoteJudge{}
	svc := newTestService(remote)

	_, err := svc.Evaluate(context.Background(), domain.EvaluationRequest{
		SourceCode:      "x",
		Language:        "cobol",
		Stdin:           []string{"1"},
		ExpectedOutputs: []string{"1"},
	})
	if !errors.Is(err, errs.UnsupportedLanguage) {
		t.Fatalf("expected UnsupportedLanguage, got %v", err)
	}
	if remote.submitCalls != 0 {
		t.Fatalf("remote judge must not be called for unknown language")
	}
}

func TestEvaluateAllAccepted(t *testing.T) {
	remote := &fakeRemoteJudge{
		fetchRounds: [][]domain.RawJudgeResult{
			{accepted("1\n"), accepted("2\n"), accepted("3\n")},
		},
	}
	svc := newTestService(remote)
	req := threeCaseRequest()

	eval, err := svc.Evaluate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.Verdict != domain.VerdictAccepted {
		t.Fatalf("expected ACCEPTED, got %s", eval.Verdict)
	}
	if len(eval.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(eval.Outcomes))
	}
	for i, outcome := range eval.Outcomes {
		if !outcome.Passed {
			t.Errorf("outcome %d should have passed", i+1)
		}
		if outcome.Stdin != req.Stdin[i] {
			t.Errorf("outcome %d stdin = %q, want %q", i+1, outcome.Stdin, req.Stdin[i])
		}
		if outcome.TestCase != i+1 {
			t.Errorf("outcome index = %d, want %d", outcome.TestCase, i+1)
		}
	}
}

func TestEvaluateTrimsBeforeCompare(t *testing.T) {
	remote := &fakeRemoteJudge{
		fetchRounds: [][]domain.RawJudgeResult{{accepted("42\n")}},
	}
	svc := newTestService(remote)

	eval, err := svc.Evaluate(context.Background(), domain.EvaluationRequest{
		SourceCode:      "print(42)",
		Language:        "python",
		Stdin:           []string{""},
		ExpectedOutputs: []string{"42"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eval.Outcomes[0].Passed {
		t.Fatal("trailing newline should not fail the comparison")
	}
}

func TestEvaluateCompileError(t *testing.T) {
	remote := &fakeRemoteJudge{
		fetchRounds: [][]domain.RawJudgeResult{
			{
				accepted("1\n"),
				{StatusID: 6, CompileOutput: "syntax error"},
				accepted("3\n"),
			},
		},
	}
	svc := newTestService(remote)

	eval, err := svc.Evaluate(context.Background(), threeCaseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.Verdict != domain.VerdictCompileError {
		t.Fatalf("expected COMPILE_ERROR, got %s", eval.Verdict)
	}
	if eval.Outcomes[1].Passed {
		t.Fatal("compile-error outcome must not pass regardless of output")
	}
	if eval.Outcomes[1].Status != "Compilation Error" {
		t.Fatalf("status label = %q, want Compilation Error", eval.Outcomes[1].Status)
	}
	// surrounding test cases are judged independently
	if !eval.Outcomes[0].Passed || !eval.Outcomes[2].Passed {
		t.Fatal("other outcomes must be computed independently of the failing one")
	}
}

func TestEvaluateWrongAnswer(t *testing.T) {
	remote := &fakeRemoteJudge{
		fetchRounds: [][]domain.RawJudgeResult{
			{accepted("1\n"), accepted("999\n"), accepted("3\n")},
		},
	}
	svc := newTestService(remote)

	eval, err := svc.Evaluate(context.Background(), threeCaseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.Verdict != domain.VerdictWrongAnswer {
		t.Fatalf("expected WRONG_ANSWER, got %s", eval.Verdict)
	}
	if eval.Outcomes[1].Passed {
		t.Fatal("mismatching output must fail")
	}
}

func TestEvaluateFirstFailingCategoryWins(t *testing.T) {
	remote := &fakeRemoteJudge{
		fetchRounds: [][]domain.RawJudgeResult{
			{
				{StatusID: 5}, // time limit exceeded at index 0
				{StatusID: 6, CompileOutput: "boom"},
				accepted("3\n"),
			},
		},
	}
	svc := newTestService(remote)

	eval, err := svc.Evaluate(context.Background(), threeCaseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.Verdict != domain.VerdictTimeLimitExceeded {
		t.Fatalf("expected TIME_LIMIT_EXCEEDED from first failure, got %s", eval.Verdict)
	}
}

func TestEvaluateSubmitFailure(t *testing.T) {
	remote := &fakeRemoteJudge{
		submitErr: fmt.Errorf("%w: submit returned status 503", errs.JudgeUnavailable),
	}
	svc := newTestService(remote)

	eval, err := svc.Evaluate(context.Background(), threeCaseRequest())
	if !errors.Is(err, errs.JudgeUnavailable) {
		t.Fatalf("expected JudgeUnavailable, got %v", err)
	}
	if len(eval.Outcomes) != 0 {
		t.Fatal("no outcomes may be produced when submit fails")
	}
	if remote.fetchCalls != 0 {
		t.Fatal("polling must not start after a failed submit")
	}
}

func TestEvaluateFetchFailure(t *testing.T) {
	remote := &fakeRemoteJudge{
		fetchErr: fmt.Errorf("%w: connection refused", errs.JudgeUnavailable),
	}
	svc := newTestService(remote)

	_, err := svc.Evaluate(context.Background(), threeCaseRequest())
	if !errors.Is(err, errs.JudgeUnavailable) {
		t.Fatalf("expected JudgeUnavailable, got %v", err)
	}
}

func TestEvaluatePollsUntilAllTerminal(t *testing.T) {
	processing := domain.RawJudgeResult{StatusID: 2}
	remote := &fakeRemoteJudge{
		fetchRounds: [][]domain.RawJudgeResult{
			{accepted("1\n"), processing, processing},
			{accepted("1\n"), accepted("2\n"), processing},
			{accepted("1\n"), accepted("2\n"), accepted("3\n")},
		},
	}
	svc := newTestService(remote)

	eval, err := svc.Evaluate(context.Background(), threeCaseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remote.fetchCalls != 3 {
		t.Fatalf("expected 3 fetch rounds, got %d", remote.fetchCalls)
	}
	if eval.Verdict != domain.VerdictAccepted {
		t.Fatalf("expected ACCEPTED, got %s", eval.Verdict)
	}
	for _, outcome := range eval.Outcomes {
		if outcome.Status == "In Queue" || outcome.Status == "Processing" {
			t.Fatalf("non-terminal status %q leaked into final outcomes", outcome.Status)
		}
	}
}

func TestEvaluateTimeoutAfterAttemptBudget(t *testing.T) {
	remote := &fakeRemoteJudge{
		fetchRounds: [][]domain.RawJudgeResult{{{StatusID: 1}}},
	}
	svc := newTestService(remote)

	_, err := svc.Evaluate(context.Background(), domain.EvaluationRequest{
		SourceCode:      "while True: pass",
		Language:        "python",
		Stdin:           []string{""},
		ExpectedOutputs: []string{""},
	})
	if !errors.Is(err, errs.JudgeTimeout) {
		t.Fatalf("expected JudgeTimeout, got %v", err)
	}
	if remote.fetchCalls != 5 {
		t.Fatalf("expected exactly 5 poll attempts, got %d", remote.fetchCalls)
	}
}

func TestEvaluateCancellationAbortsPolling(t *testing.T) {
	remote := &fakeRemoteJudge{
		fetchRounds: [][]domain.RawJudgeResult{{{StatusID: 2}}},
	}
	svc := NewJudgeService(remote, nopLogger{}, &config.JudgeConfig{
		PollInterval:    time.Minute,
		MaxPollAttempts: 10,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.Evaluate(ctx, threeCaseRequest())
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("cancellation did not abort the poll sleep")
	}
}

func TestEvaluateDeadlineMapsToJudgeTimeout(t *testing.T) {
	remote := &fakeRemoteJudge{
		fetchRounds: [][]domain.RawJudgeResult{{{StatusID: 2}}},
	}
	svc := NewJudgeService(remote, nopLogger{}, &config.JudgeConfig{
		PollInterval:    time.Minute,
		MaxPollAttempts: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Evaluate(ctx, threeCaseRequest())
	if !errors.Is(err, errs.JudgeTimeout) {
		t.Fatalf("expected JudgeTimeout on expired deadline, got %v", err)
	}
}

func TestEvaluateSubmissionOrderMatchesRequest(t *testing.T) {
	remote := &fakeRemoteJudge{
		fetchRounds: [][]domain.RawJudgeResult{
			{accepted("1\n"), accepted("2\n"), accepted("3\n")},
		},
	}
	svc := newTestService(remote)
	req := threeCaseRequest()

	if _, err := svc.Evaluate(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, sub := range remote.submitted {
		if sub.Stdin != req.Stdin[i] {
			t.Errorf("batch entry %d stdin = %q, want %q", i, sub.Stdin, req.Stdin[i])
		}
		if sub.SourceCode != req.SourceCode {
			t.Errorf("batch entry %d must share the request source code", i)
		}
	}
}
