package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a persisted evaluation of user code against a problem
type Submission struct {
	ID         uuid.UUID         `db:"id" json:"id"`
	UserID     uuid.UUID         `db:"user_id" json:"userId"`
	ProblemID  uuid.UUID         `db:"problem_id" json:"problemId"`
	SourceCode string            `db:"source_code" json:"sourceCode"`
	Language   string            `db:"language" json:"language"`
	Status     Verdict           `db:"status" json:"status"`
	TestCases  []TestCaseOutcome `json:"testCases"`
	CreatedAt  time.Time         `db:"created_at" json:"createdAt"`
}

// NewSubmission creates a submission record from an evaluation
func NewSubmission(userID, problemID uuid.UUID, sourceCode, language string, eval Evaluation) *Submission {
	return &Submission{
		ID:         uuid.New(),
		UserID:     userID,
		ProblemID:  problemID,
		SourceCode: sourceCode,
		Language:   language,
		Status:     eval.Verdict,
		TestCases:  eval.Outcomes,
		CreatedAt:  time.Now(),
	}
}
