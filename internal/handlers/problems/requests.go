package problems

import (
	"gitlab.com/codelab.net/internal/core/services/problem"
	"gitlab.com/codelab.net/internal/domain"
)

type createProblemRequest struct {
	Title            string                   `json:"title"`
	Description      string                   `json:"description"`
	Difficulty       domain.Difficulty        `json:"difficulty"`
	Tags             []string                 `json:"tags"`
	Examples         []domain.Example         `json:"examples"`
	Constraints      []string                 `json:"constraints"`
	Hints            []string                 `json:"hints"`
	TestCases        []domain.TestCase        `json:"testCases"`
	CodeInformations []domain.CodeInformation `json:"codeInformations"`
}

func (r createProblemRequest) toDomain(createdBy *domain.Users) *domain.Problem {
	return &domain.Problem{
		Title:            r.Title,
		Description:      r.Description,
		Difficulty:       r.Difficulty,
		Tags:             r.Tags,
		CreatedBy:        createdBy.ID,
		Examples:         r.Examples,
		Constraints:      r.Constraints,
		Hints:            r.Hints,
		TestCases:        r.TestCases,
		CodeInformations: r.CodeInformations,
	}
}

type updateInformationRequest struct {
	Description string            `json:"description"`
	Difficulty  domain.Difficulty `json:"difficulty"`
	Tags        []string          `json:"tags"`
	Examples    []domain.Example  `json:"examples"`
	Constraints []string          `json:"constraints"`
	Hints       []string          `json:"hints"`
}

func (r updateInformationRequest) toUpdate() problem.UpdateInformation {
	return problem.UpdateInformation{
		Description: r.Description,
		Difficulty:  r.Difficulty,
		Tags:        r.Tags,
		Examples:    r.Examples,
		Constraints: r.Constraints,
		Hints:       r.Hints,
	}
}

type updateTestCasesRequest struct {
	TestCases        []domain.TestCase        `json:"testCases"`
	CodeInformations []domain.CodeInformation `json:"codeInformations"`
}
