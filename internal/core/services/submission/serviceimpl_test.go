package submission

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/static/errs"
)

type stubJudge struct {
	eval domain.Evaluation
	err  error
}

func (s stubJudge) Evaluate(ctx context.Context, req domain.EvaluationRequest) (domain.Evaluation, error) {
	return s.eval, s.err
}

type fakeProblemPort struct {
	problem *domain.Problem
	// keyed by user+problem, set semantics like the join table
	solved map[string]struct{}
}

func newFakeProblemPort(problem *domain.Problem) *fakeProblemPort {
	return &fakeProblemPort{problem: problem, solved: make(map[string]struct{})}
}

func (f *fakeProblemPort) Create(ctx context.Context, p *domain.Problem) error { return nil }
func (f *fakeProblemPort) GetBySlug(ctx context.Context, slug string) (*domain.Problem, error) {
	if f.problem != nil && f.problem.Slug == slug {
		return f.problem, nil
	}
	return nil, nil
}
func (f *fakeProblemPort) GetByTitle(ctx context.Context, title string) (*domain.Problem, error) {
	return nil, nil
}
func (f *fakeProblemPort) List(ctx context.Context) ([]*domain.ProblemSummary, error) {
	return nil, nil
}
func (f *fakeProblemPort) Update(ctx context.Context, p *domain.Problem) error { return nil }
func (f *fakeProblemPort) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

func (f *fakeProblemPort) MarkSolved(ctx context.Context, userID, problemID uuid.UUID) error {
	f.solved[userID.String()+"/"+problemID.String()] = struct{}{}
	return nil
}
func (f *fakeProblemPort) SolvedProblems(ctx context.Context, userID uuid.UUID) ([]*domain.ProblemSummary, error) {
	return nil, nil
}
func (f *fakeProblemPort) Solvers(ctx context.Context, problemID uuid.UUID) ([]uuid.UUID, error) {
	var solvers []uuid.UUID
	for key := range f.solved {
		solvers = append(solvers, problemID)
		_ = key
	}
	return solvers, nil
}
func (f *fakeProblemPort) IsSolved(ctx context.Context, userID, problemID uuid.UUID) (bool, error) {
	_, ok := f.solved[userID.String()+"/"+problemID.String()]
	return ok, nil
}

type fakeSubmissionPort struct {
	saved []*domain.Submission
}

func (f *fakeSubmissionPort) Save(ctx context.Context, sub *domain.Submission) error {
	f.saved = append(f.saved, sub)
	return nil
}
func (f *fakeSubmissionPort) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	for _, sub := range f.saved {
		if sub.ID == id {
			return sub, nil
		}
	}
	return nil, nil
}
func (f *fakeSubmissionPort) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	var out []*domain.Submission
	for _, sub := range f.saved {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}
func (f *fakeSubmissionPort) ListByUserAndProblem(ctx context.Context, userID, problemID uuid.UUID) ([]*domain.Submission, error) {
	return nil, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

func testProblem() *domain.Problem {
	return &domain.Problem{
		ID:    uuid.New(),
		Title: "Two Sum",
		Slug:  "two-sum",
		TestCases: []domain.TestCase{
			{Input: "1 2", Output: "3"},
			{Input: "2 3", Output: "5", IsLocked: true},
		},
		CreatedAt: time.Now(),
	}
}

func acceptedEval() domain.Evaluation {
	return domain.Evaluation{
		Verdict: domain.VerdictAccepted,
		Outcomes: []domain.TestCaseOutcome{
			{TestCase: 1, Passed: true, Status: "Accepted"},
			{TestCase: 2, Passed: true, Status: "Accepted"},
		},
	}
}

func TestSubmitPersistsAndMarksSolved(t *testing.T) {
	problem := testProblem()
	problems := newFakeProblemPort(problem)
	submissions := &fakeSubmissionPort{}
	svc := NewSubmissionService(submissions, problems, stubJudge{eval: acceptedEval()}, nopLogger{})

	userID := uuid.New()
	sub, err := svc.Submit(context.Background(), userID, "two-sum", "code", "python")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Status != domain.VerdictAccepted {
		t.Fatalf("submission status = %s, want ACCEPTED", sub.Status)
	}
	if len(submissions.saved) != 1 {
		t.Fatalf("expected 1 saved submission, got %d", len(submissions.saved))
	}
	if solved, _ := problems.IsSolved(context.Background(), userID, problem.ID); !solved {
		t.Fatal("accepted submission must mark the problem solved")
	}
}

func TestSubmitTwiceAcceptedIsIdempotent(t *testing.T) {
	problem := testProblem()
	problems := newFakeProblemPort(problem)
	submissions := &fakeSubmissionPort{}
	svc := NewSubmissionService(submissions, problems, stubJudge{eval: acceptedEval()}, nopLogger{})

	userID := uuid.New()
	for i := 0; i < 2; i++ {
		if _, err := svc.Submit(context.Background(), userID, "two-sum", "code", "python"); err != nil {
			t.Fatalf("submit %d: %v", i+1, err)
		}
	}

	if len(problems.solved) != 1 {
		t.Fatalf("solved set size = %d, want exactly 1 entry for the pair", len(problems.solved))
	}
	if len(submissions.saved) != 2 {
		t.Fatalf("both submissions are persisted, got %d", len(submissions.saved))
	}
}

func TestSubmitRejectedDoesNotMarkSolved(t *testing.T) {
	problem := testProblem()
	problems := newFakeProblemPort(problem)
	submissions := &fakeSubmissionPort{}
	rejected := domain.Evaluation{
		Verdict: domain.VerdictWrongAnswer,
		Outcomes: []domain.TestCaseOutcome{
			{TestCase: 1, Passed: false, Status: "Wrong Answer"},
		},
	}
	svc := NewSubmissionService(submissions, problems, stubJudge{eval: rejected}, nopLogger{})

	userID := uuid.New()
	if _, err := svc.Submit(context.Background(), userID, "two-sum", "code", "python"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(problems.solved) != 0 {
		t.Fatal("rejected submission must not touch the solved set")
	}
	if len(submissions.saved) != 1 {
		t.Fatal("rejected submission is still persisted")
	}
}

func TestSubmitJudgeFailureLeavesNoTrace(t *testing.T) {
	problem := testProblem()
	problems := newFakeProblemPort(problem)
	submissions := &fakeSubmissionPort{}
	svc := NewSubmissionService(submissions, problems,
		stubJudge{err: fmt.Errorf("%w: status 503", errs.JudgeUnavailable)}, nopLogger{})

	_, err := svc.Submit(context.Background(), uuid.New(), "two-sum", "code", "python")
	if !errors.Is(err, errs.JudgeUnavailable) {
		t.Fatalf("expected JudgeUnavailable, got %v", err)
	}
	if len(submissions.saved) != 0 {
		t.Fatal("no submission may be persisted when the judge is unavailable")
	}
	if len(problems.solved) != 0 {
		t.Fatal("solved set must stay untouched when the judge is unavailable")
	}
}

func TestRunDoesNotPersist(t *testing.T) {
	problem := testProblem()
	problems := newFakeProblemPort(problem)
	submissions := &fakeSubmissionPort{}
	svc := NewSubmissionService(submissions, problems, stubJudge{eval: acceptedEval()}, nopLogger{})

	eval, err := svc.Run(context.Background(), "two-sum", "code", "python")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.Verdict != domain.VerdictAccepted {
		t.Fatalf("verdict = %s, want ACCEPTED", eval.Verdict)
	}
	if len(submissions.saved) != 0 || len(problems.solved) != 0 {
		t.Fatal("run must not persist submissions or solved state")
	}
}

func TestSubmitUnknownProblem(t *testing.T) {
	problems := newFakeProblemPort(nil)
	svc := NewSubmissionService(&fakeSubmissionPort{}, problems, stubJudge{eval: acceptedEval()}, nopLogger{})

	_, err := svc.Submit(context.Background(), uuid.New(), "missing", "code", "python")
	if !errors.Is(err, errs.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	problem := testProblem()
	problems := newFakeProblemPort(problem)
	submissions := &fakeSubmissionPort{}
	svc := NewSubmissionService(submissions, problems, stubJudge{eval: acceptedEval()}, nopLogger{})

	owner := uuid.New()
	sub, err := svc.Submit(context.Background(), owner, "two-sum", "code", "python")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Get(context.Background(), owner, sub.ID); err != nil {
		t.Fatalf("owner should read own submission: %v", err)
	}
	if _, err := svc.Get(context.Background(), uuid.New(), sub.ID); !errors.Is(err, errs.Forbidden) {
		t.Fatalf("expected Forbidden for foreign submission, got %v", err)
	}
}
