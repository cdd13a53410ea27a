package domain

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty represents the difficulty of a problem
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Example is a worked example shown on the problem page
type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation"`
}

// TestCase is one input/expected-output pair. Locked test cases are
// hidden from users and only used for submissions.
type TestCase struct {
	Input    string `json:"input"`
	Output   string `json:"output"`
	IsLocked bool   `json:"isLocked"`
}

// CodeInformation carries the per-language starter snippet and the
// reference solution used to validate the test cases
type CodeInformation struct {
	Language string `json:"language"`
	Snippet  string `json:"snippet"`
	Solution string `json:"solution"`
}

// Editorial is the authored solution write-up
type Editorial struct {
	ProblemBreakdown           []string           `json:"problemBreakdown"`
	SolutionApproachDiscussion []string           `json:"solutionApproachDiscussion"`
	TimeComplexityDiscussion   ComplexityCases    `json:"timeComplexityDiscussion"`
	SpaceComplexityDiscussion  ComplexityCases    `json:"spaceComplexityDiscussion"`
	EdgeCasesDiscussion        []EdgeCase         `json:"edgeCasesDiscussion,omitempty"`
	SolutionCode               []EditorialSnippet `json:"solutionCode,omitempty"`
}

type ComplexityCases struct {
	BestCase    string `json:"bestCase"`
	AverageCase string `json:"averageCase"`
	WorstCase   string `json:"worstCase"`
}

type EdgeCase struct {
	Case       string `json:"case"`
	Discussion string `json:"discussion"`
}

type EditorialSnippet struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Problem is one catalog entry
type Problem struct {
	ID               uuid.UUID         `db:"id" json:"id"`
	Title            string            `db:"title" json:"title"`
	Description      string            `db:"description" json:"description"`
	Difficulty       Difficulty        `db:"difficulty" json:"difficulty"`
	Tags             []string          `json:"tags"`
	CreatedBy        uuid.UUID         `db:"created_by" json:"createdBy"`
	Examples         []Example         `json:"examples"`
	Constraints      []string          `json:"constraints"`
	Hints            []string          `json:"hints,omitempty"`
	Editorial        *Editorial        `json:"editorial,omitempty"`
	TestCases        []TestCase        `json:"testCases"`
	CodeInformations []CodeInformation `json:"codeInformations"`
	Slug             string            `db:"slug" json:"slug"`
	CreatedAt        time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time         `db:"updated_at" json:"updatedAt"`
}

// ProblemSummary is the listing projection of a problem
type ProblemSummary struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Title      string     `db:"title" json:"title"`
	Difficulty Difficulty `db:"difficulty" json:"difficulty"`
	Tags       []string   `json:"tags"`
	Slug       string     `db:"slug" json:"slug"`
	SolvedBy   int        `db:"solved_by" json:"solvedBy"`
}

// UnlockedTestCases returns the test cases visible to run requests
func (p *Problem) UnlockedTestCases() []TestCase {
	var visible []TestCase
	for _, tc := range p.TestCases {
		if !tc.IsLocked {
			visible = append(visible, tc)
		}
	}
	return visible
}

// CodeInformationFor returns the code information for a language, if any
func (p *Problem) CodeInformationFor(language string) *CodeInformation {
	for i := range p.CodeInformations {
		if p.CodeInformations[i].Language == language {
			return &p.CodeInformations[i]
		}
	}
	return nil
}
