// package sheetrepository contains the PostgreSQL implementation of the
// sheet port. Sheet membership lives in the sheet_problems join table.
package sheetrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/ports/secondary"
	"gitlab.com/codelab.net/internal/domain"
)

var _ secondary.SheetPort = (*sheetRepo)(nil)

type sheetRepo struct {
	db     *sqlx.DB
	logger primary.Logger
}

func New(db *sqlx.DB, logger primary.Logger) secondary.SheetPort {
	return &sheetRepo{
		db:     db,
		logger: logger,
	}
}

const sheetColumns = `id, title, description, created_by, status, slug,
	created_at, updated_at`

func (r *sheetRepo) Create(ctx context.Context, sheet *domain.Sheet) error {
	query := `
		INSERT INTO sheets (
			id, title, description, created_by, status, slug,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(
		ctx,
		query,
		sheet.ID,
		sheet.Title,
		sheet.Description,
		sheet.CreatedBy,
		sheet.Status,
		sheet.Slug,
		sheet.CreatedAt,
		sheet.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create sheet", "slug", sheet.Slug, "error", err)
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	return nil
}

func (r *sheetRepo) GetBySlug(ctx context.Context, slug string) (*domain.Sheet, error) {
	query := fmt.Sprintf("SELECT %s FROM sheets WHERE slug = $1", sheetColumns)

	var sheet domain.Sheet
	err := r.db.GetContext(ctx, &sheet, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sheet: %w", err)
	}

	if err := r.db.SelectContext(ctx, &sheet.Problems,
		`SELECT problem_id FROM sheet_problems WHERE sheet_id = $1 ORDER BY position`,
		sheet.ID); err != nil {
		return nil, fmt.Errorf("failed to load sheet problems: %w", err)
	}
	return &sheet, nil
}

func (r *sheetRepo) List(ctx context.Context, includePrivate bool) ([]*domain.Sheet, error) {
	query := fmt.Sprintf("SELECT %s FROM sheets", sheetColumns)
	if !includePrivate {
		query += " WHERE status = 'public'"
	}
	query += " ORDER BY created_at"

	var sheets []*domain.Sheet
	if err := r.db.SelectContext(ctx, &sheets, query); err != nil {
		return nil, fmt.Errorf("failed to list sheets: %w", err)
	}
	return sheets, nil
}

func (r *sheetRepo) Update(ctx context.Context, sheet *domain.Sheet) error {
	query := `
		UPDATE sheets SET
			title = $1, description = $2, status = $3, slug = $4, updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(
		ctx,
		query,
		sheet.Title,
		sheet.Description,
		sheet.Status,
		sheet.Slug,
		sheet.UpdatedAt,
		sheet.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update sheet", "slug", sheet.Slug, "error", err)
		return fmt.Errorf("failed to update sheet: %w", err)
	}
	return nil
}

func (r *sheetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sheets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sheet: %w", err)
	}
	return nil
}

func (r *sheetRepo) AddProblem(ctx context.Context, sheetID, problemID uuid.UUID) error {
	query := `
		INSERT INTO sheet_problems (sheet_id, problem_id, position)
		VALUES ($1, $2, (
			SELECT COALESCE(MAX(position), 0) + 1
			FROM sheet_problems WHERE sheet_id = $1
		))
		ON CONFLICT (sheet_id, problem_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, sheetID, problemID); err != nil {
		return fmt.Errorf("failed to add problem to sheet: %w", err)
	}
	return nil
}

func (r *sheetRepo) RemoveProblem(ctx context.Context, sheetID, problemID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sheet_problems WHERE sheet_id = $1 AND problem_id = $2`,
		sheetID, problemID)
	if err != nil {
		return fmt.Errorf("failed to remove problem from sheet: %w", err)
	}
	return nil
}
