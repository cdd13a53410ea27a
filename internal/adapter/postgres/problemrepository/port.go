// package problemrepository contains the PostgreSQL implementation of
// the problem port. Test cases, examples and editorial content are
// stored as JSONB documents; the solved state lives in the
// solved_problems join table keyed by (user_id, problem_id).
package problemrepository

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

var _ secondary.ProblemPort = (*problemRepo)(nil)

type problemRepo struct {
	db     *sqlx.DB
	logger primary.Logger
}

func New(db *sqlx.DB, logger primary.Logger) secondary.ProblemPort {
	return &problemRepo{
		db:     db,
		logger: logger,
	}
}

// problemRow mirrors the problems table; document columns are JSONB
type problemRow struct {
	ID               uuid.UUID `db:"id"`
	Title            string    `db:"title"`
	Description      string    `db:"description"`
	Difficulty       string    `db:"difficulty"`
	Tags             []byte    `db:"tags"`
	CreatedBy        uuid.UUID `db:"created_by"`
	Examples         []byte    `db:"examples"`
	Constraints      []byte    `db:"constraints"`
	Hints            []byte    `db:"hints"`
	Editorial        []byte    `db:"editorial"`
	TestCases        []byte    `db:"test_cases"`
	CodeInformations []byte    `db:"code_informations"`
	Slug             string    `db:"slug"`
	CreatedAt        sql.NullTime `db:"created_at"`
	UpdatedAt        sql.NullTime `db:"updated_at"`
}

const problemColumns = `id, title, description, difficulty, tags, created_by,
	examples, constraints, hints, editorial, test_cases, code_informations,
	slug, created_at, updated_at`

func (r *problemRepo) Create(ctx context.Context, problem *domain.Problem) error {
	row, err := toRow(problem)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO problems (
			id, title, description, difficulty, tags, created_by,
			examples, constraints, hints, editorial, test_cases,
			code_informations, slug, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = r.db.ExecContext(
		ctx,
		query,
		row.ID, row.Title, row.Description, row.Difficulty, row.Tags,
		row.CreatedBy, row.Examples, row.Constraints, row.Hints,
		row.Editorial, row.TestCases, row.CodeInformations, row.Slug,
		problem.CreatedAt, problem.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create problem", "slug", problem.Slug, "error", err)
		return fmt.Errorf("failed to create problem: %w", err)
	}
	return nil
}

func (r *problemRepo) GetBySlug(ctx context.Context, slug string) (*domain.Problem, error) {
	return r.getBy(ctx, "slug = $1", slug)
}

func (r *problemRepo) GetByTitle(ctx context.Context, title string) (*domain.Problem, error) {
	return r.getBy(ctx, "title = $1", title)
}

func (r *problemRepo) getBy(ctx context.Context, clause string, arg interface{}) (*domain.Problem, error) {
	query := fmt.Sprintf("SELECT %s FROM problems WHERE %s", problemColumns, clause)

	var row problemRow
	err := r.db.GetContext(ctx, &row, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	return fromRow(&row)
}

func (r *problemRepo) List(ctx context.Context) ([]*domain.ProblemSummary, error) {
	query := `
		SELECT p.id, p.title, p.difficulty, p.tags, p.slug,
			   COUNT(sp.user_id) AS solved_by
		FROM problems p
		LEFT JOIN solved_problems sp ON sp.problem_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at
	`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	defer rows.Close()

	var summaries []*domain.ProblemSummary
	for rows.Next() {
		var (
			summary domain.ProblemSummary
			tags    []byte
		)
		if err := rows.Scan(&summary.ID, &summary.Title, &summary.Difficulty, &tags, &summary.Slug, &summary.SolvedBy); err != nil {
			return nil, fmt.Errorf("failed to scan problem summary: %w", err)
		}
		if err := json.Unmarshal(tags, &summary.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
		summaries = append(summaries, &summary)
	}
	return summaries, rows.Err()
}

func (r *problemRepo) Update(ctx context.Context, problem *domain.Problem) error {
	row, err := toRow(problem)
	if err != nil {
		return err
	}

	query := `
		UPDATE problems SET
			description = $1, difficulty = $2, tags = $3, examples = $4,
			constraints = $5, hints = $6, editorial = $7, test_cases = $8,
			code_informations = $9, updated_at = $10
		WHERE id = $11
	`
	_, err = r.db.ExecContext(
		ctx,
		query,
		row.Description, row.Difficulty, row.Tags, row.Examples,
		row.Constraints, row.Hints, row.Editorial, row.TestCases,
		row.CodeInformations, problem.UpdatedAt, row.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update problem", "slug", problem.Slug, "error", err)
		return fmt.Errorf("failed to update problem: %w", err)
	}
	return nil
}

func (r *problemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM problems WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete problem: %w", err)
	}
	return nil
}

// MarkSolved inserts into the join table with DO NOTHING semantics so
// concurrent accepted submissions for the same pair cannot double-count
func (r *problemRepo) MarkSolved(ctx context.Context, userID, problemID uuid.UUID) error {
	query := `
		INSERT INTO solved_problems (user_id, problem_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, problem_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID, problemID); err != nil {
		r.logger.Error("Failed to mark solved", "user", userID, "problem", problemID, "error", err)
		return fmt.Errorf("failed to mark solved: %w", err)
	}
	return nil
}

func (r *problemRepo) SolvedProblems(ctx context.Context, userID uuid.UUID) ([]*domain.ProblemSummary, error) {
	query := `
		SELECT p.id, p.title, p.difficulty, p.tags, p.slug,
			   COUNT(all_sp.user_id) AS solved_by
		FROM problems p
		JOIN solved_problems sp ON sp.problem_id = p.id AND sp.user_id = $1
		LEFT JOIN solved_problems all_sp ON all_sp.problem_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at
	`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list solved problems: %w", err)
	}
	defer rows.Close()

	var summaries []*domain.ProblemSummary
	for rows.Next() {
		var (
			summary domain.ProblemSummary
			tags    []byte
		)
		if err := rows.Scan(&summary.ID, &summary.Title, &summary.Difficulty, &tags, &summary.Slug, &summary.SolvedBy); err != nil {
			return nil, fmt.Errorf("failed to scan solved problem: %w", err)
		}
		if err := json.Unmarshal(tags, &summary.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
		summaries = append(summaries, &summary)
	}
	return summaries, rows.Err()
}

func (r *problemRepo) Solvers(ctx context.Context, problemID uuid.UUID) ([]uuid.UUID, error) {
	var solvers []uuid.UUID
	err := r.db.SelectContext(ctx, &solvers,
		`SELECT user_id FROM solved_problems WHERE problem_id = $1`, problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list solvers: %w", err)
	}
	return solvers, nil
}

func (r *problemRepo) IsSolved(ctx context.Context, userID, problemID uuid.UUID) (bool, error) {
	var solved bool
	err := r.db.GetContext(ctx, &solved,
		`SELECT EXISTS (SELECT 1 FROM solved_problems WHERE user_id = $1 AND problem_id = $2)`,
		userID, problemID)
	if err != nil {
		return false, fmt.Errorf("failed to check solved state: %w", err)
	}
	return solved, nil
}

func toRow(problem *domain.Problem) (*problemRow, error) {
	row := &problemRow{
		ID:          problem.ID,
		Title:       problem.Title,
		Description: problem.Description,
		Difficulty:  string(problem.Difficulty),
		CreatedBy:   problem.CreatedBy,
		Slug:        problem.Slug,
	}

	var err error
	if row.Tags, err = json.Marshal(problem.Tags); err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}
	if row.Examples, err = json.Marshal(problem.Examples); err != nil {
		return nil, fmt.Errorf("failed to marshal examples: %w", err)
	}
	if row.Constraints, err = json.Marshal(problem.Constraints); err != nil {
		return nil, fmt.Errorf("failed to marshal constraints: %w", err)
	}
	if row.Hints, err = json.Marshal(problem.Hints); err != nil {
		return nil, fmt.Errorf("failed to marshal hints: %w", err)
	}
	if row.Editorial, err = json.Marshal(problem.Editorial); err != nil {
		return nil, fmt.Errorf("failed to marshal editorial: %w", err)
	}
	if row.TestCases, err = json.Marshal(problem.TestCases); err != nil {
		return nil, fmt.Errorf("failed to marshal test cases: %w", err)
	}
	if row.CodeInformations, err = json.Marshal(problem.CodeInformations); err != nil {
		return nil, fmt.Errorf("failed to marshal code informations: %w", err)
	}
	return row, nil
}

func fromRow(row *problemRow) (*domain.Problem, error) {
	problem := &domain.Problem{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Difficulty:  domain.Difficulty(row.Difficulty),
		CreatedBy:   row.CreatedBy,
		Slug:        row.Slug,
	}
	if row.CreatedAt.Valid {
		problem.CreatedAt = row.CreatedAt.Time
	}
	if row.UpdatedAt.Valid {
		problem.UpdatedAt = row.UpdatedAt.Time
	}

	for _, field := range []struct {
		data []byte
		dest interface{}
	}{
		{row.Tags, &problem.Tags},
		{row.Examples, &problem.Examples},
		{row.Constraints, &problem.Constraints},
		{row.Hints, &problem.Hints},
		{row.TestCases, &problem.TestCases},
		{row.CodeInformations, &problem.CodeInformations},
	} {
		if len(field.data) == 0 {
			continue
		}
		if err := json.Unmarshal(field.data, field.dest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal problem document: %w", err)
		}
	}

	if len(row.Editorial) > 0 && string(row.Editorial) != "null" {
		var editorial domain.Editorial
		if err := json.Unmarshal(row.Editorial, &editorial); err != nil {
			return nil, fmt.Errorf("failed to unmarshal editorial: %w", err)
		}
		problem.Editorial = &editorial
	}
	return problem, nil
}
