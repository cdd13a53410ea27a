package secondary

import (
	"context"

	"gitlab.com/codelab.net/internal/domain"
)

// RemoteJudge is the transport contract with the remote judging service.
// Both calls preserve order: tokens come back in submission order and
// results come back in token order.
type RemoteJudge interface {
	// SubmitBatch submits one batch and returns one opaque token per entry
	SubmitBatch(ctx context.Context, submissions []domain.BatchSubmission) ([]string, error)

	// FetchBatch fetches the current state of every token. Entries may
	// still be queued or processing; the caller decides whether to poll
	// again.
	FetchBatch(ctx context.Context, tokens []string) ([]domain.RawJudgeResult, error)
}
