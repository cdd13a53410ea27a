// package submissionrepository contains the PostgreSQL implementation
// of the submission port
package submissionrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/ports/secondary"
	"gitlab.com/codelab.net/internal/domain"
)

var _ secondary.SubmissionPort = (*submissionRepo)(nil)

type submissionRepo struct {
	db     *sqlx.DB
	logger primary.Logger
}

func New(db *sqlx.DB, logger primary.Logger) secondary.SubmissionPort {
	return &submissionRepo{
		db:     db,
		logger: logger,
	}
}

const submissionColumns = `id, user_id, problem_id, source_code, language,
	status, test_cases, created_at`

func (r *submissionRepo) Save(ctx context.Context, submission *domain.Submission) error {
	testCases, err := json.Marshal(submission.TestCases)
	if err != nil {
		return fmt.Errorf("failed to marshal test case results: %w", err)
	}

	query := `
		INSERT INTO submissions (
			id, user_id, problem_id, source_code, language, status,
			test_cases, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.ExecContext(
		ctx,
		query,
		submission.ID,
		submission.UserID,
		submission.ProblemID,
		submission.SourceCode,
		submission.Language,
		submission.Status,
		testCases,
		submission.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save submission", "id", submission.ID, "error", err)
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

func (r *submissionRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	query := fmt.Sprintf("SELECT %s FROM submissions WHERE id = $1", submissionColumns)

	row := r.db.QueryRowxContext(ctx, query, id)
	submission, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return submission, nil
}

func (r *submissionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM submissions WHERE user_id = $1 ORDER BY created_at DESC",
		submissionColumns,
	)
	return r.list(ctx, query, userID)
}

func (r *submissionRepo) ListByUserAndProblem(ctx context.Context, userID, problemID uuid.UUID) ([]*domain.Submission, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM submissions WHERE user_id = $1 AND problem_id = $2 ORDER BY created_at DESC",
		submissionColumns,
	)
	return r.list(ctx, query, userID, problemID)
}

func (r *submissionRepo) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Submission, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*domain.Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, submission)
	}
	return submissions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (*domain.Submission, error) {
	var (
		submission domain.Submission
		testCases  []byte
	)
	err := row.Scan(
		&submission.ID,
		&submission.UserID,
		&submission.ProblemID,
		&submission.SourceCode,
		&submission.Language,
		&submission.Status,
		&testCases,
		&submission.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(testCases, &submission.TestCases); err != nil {
		return nil, fmt.Errorf("failed to unmarshal test case results: %w", err)
	}
	return &submission, nil
}
