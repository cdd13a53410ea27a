package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/domain"
)

type SubmissionPort interface {
	Save(ctx context.Context, submission *domain.Submission) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error)
	ListByUserAndProblem(ctx context.Context, userID, problemID uuid.UUID) ([]*domain.Submission, error)
}
