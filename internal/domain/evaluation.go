package domain

// Verdict represents the aggregate outcome of one evaluation
type Verdict string

const (
	VerdictAccepted          Verdict = "ACCEPTED"
	VerdictWrongAnswer       Verdict = "WRONG_ANSWER"
	VerdictCompileError      Verdict = "COMPILE_ERROR"
	VerdictRuntimeError      Verdict = "RUNTIME_ERROR"
	VerdictTimeLimitExceeded Verdict = "TIME_LIMIT_EXCEEDED"
)

// EvaluationRequest asks to run one piece of source code against a set
// of test inputs. Stdin and ExpectedOutputs must have the same length.
type EvaluationRequest struct {
	SourceCode      string
	Language        string
	Stdin           []string
	ExpectedOutputs []string
}

// BatchSubmission is one entry of a remote judge batch, one per test case
type BatchSubmission struct {
	SourceCode     string `json:"source_code"`
	LanguageID     int    `json:"language_id"`
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output,omitempty"`
}

// RawJudgeResult is the remote judge output for a single token
type RawJudgeResult struct {
	StatusID          int
	StatusDescription string
	Stdout            string
	Stderr            string
	CompileOutput     string
	Memory            string
	Time              string
}

// TestCaseOutcome is the reconciled result for one test case.
// TestCase is 1-based and matches the position of the stdin/expected pair
// in the originating request.
type TestCaseOutcome struct {
	TestCase       int    `json:"testCase"`
	Passed         bool   `json:"passed"`
	Stdin          string `json:"stdin"`
	Stdout         string `json:"stdout"`
	ExpectedOutput string `json:"expectedOutput"`
	Stderr         string `json:"stderr,omitempty"`
	CompileOutput  string `json:"compileOutput,omitempty"`
	Memory         string `json:"memory,omitempty"`
	Time           string `json:"time,omitempty"`
	Status         string `json:"status"`
}

// Evaluation is the reconciled result of one request across all its
// test cases
type Evaluation struct {
	Outcomes []TestCaseOutcome `json:"testCasesExecutionResults"`
	Verdict  Verdict           `json:"executionStatus"`
}

// Accepted reports whether every outcome passed
func (e Evaluation) Accepted() bool {
	return e.Verdict == VerdictAccepted
}
