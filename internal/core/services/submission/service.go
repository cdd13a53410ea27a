package submission

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/domain"
)

type ISubmissionService interface {
	// Run evaluates code against a problem's test cases without
	// persisting anything.
	Run(ctx context.Context, problemSlug, sourceCode, language string) (domain.Evaluation, error)

	// Submit evaluates, persists the submission and, on an accepted
	// verdict, records the solved state for the (user, problem) pair.
	Submit(ctx context.Context, userID uuid.UUID, problemSlug, sourceCode, language string) (*domain.Submission, error)

	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Submission, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error)
}
