package sheet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/ports/secondary"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/static/errs"
)

var _ ISheetService = (*SheetService)(nil)

// SheetService implements the ISheetService interface
type SheetService struct {
	sheetPort   secondary.SheetPort
	problemPort secondary.ProblemPort
	logger      primary.Logger
}

// NewSheetService creates a new sheet service
func NewSheetService(sheetPort secondary.SheetPort, problemPort secondary.ProblemPort, logger primary.Logger) *SheetService {
	return &SheetService{
		sheetPort:   sheetPort,
		problemPort: problemPort,
		logger:      logger,
	}
}

func (s *SheetService) Create(ctx context.Context, sheet *domain.Sheet) error {
	existing, err := s.sheetPort.GetBySlug(ctx, slug.Make(sheet.Title))
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: sheet with this title", errs.AlreadyExists)
	}

	sheet.ID = uuid.New()
	sheet.Slug = slug.Make(sheet.Title)
	if sheet.Status == "" {
		sheet.Status = domain.SheetStatusPrivate
	}
	sheet.CreatedAt = time.Now()
	sheet.UpdatedAt = sheet.CreatedAt

	if err := s.sheetPort.Create(ctx, sheet); err != nil {
		s.logger.Error("Failed to create sheet", "title", sheet.Title, "error", err)
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	return nil
}

func (s *SheetService) List(ctx context.Context, actor *domain.Users) ([]*domain.Sheet, error) {
	includePrivate := actor != nil && actor.Role == domain.RoleAdmin
	return s.sheetPort.List(ctx, includePrivate)
}

func (s *SheetService) GetBySlug(ctx context.Context, slug string) (*domain.Sheet, error) {
	sheet, err := s.sheetPort.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		return nil, errs.NotFound
	}
	return sheet, nil
}

func (s *SheetService) Update(ctx context.Context, slugName string, actor *domain.Users, title, description string, status domain.SheetStatus) error {
	sheet, err := s.ownedSheet(ctx, slugName, actor)
	if err != nil {
		return err
	}

	sheet.Title = title
	sheet.Description = description
	sheet.Status = status
	sheet.Slug = slug.Make(title)
	sheet.UpdatedAt = time.Now()

	return s.sheetPort.Update(ctx, sheet)
}

func (s *SheetService) Delete(ctx context.Context, slug string, actor *domain.Users) error {
	sheet, err := s.ownedSheet(ctx, slug, actor)
	if err != nil {
		return err
	}
	return s.sheetPort.Delete(ctx, sheet.ID)
}

func (s *SheetService) AddProblem(ctx context.Context, sheetSlug, problemSlug string, actor *domain.Users) error {
	sheet, problem, err := s.resolvePair(ctx, sheetSlug, problemSlug, actor)
	if err != nil {
		return err
	}
	return s.sheetPort.AddProblem(ctx, sheet.ID, problem.ID)
}

func (s *SheetService) RemoveProblem(ctx context.Context, sheetSlug, problemSlug string, actor *domain.Users) error {
	sheet, problem, err := s.resolvePair(ctx, sheetSlug, problemSlug, actor)
	if err != nil {
		return err
	}
	return s.sheetPort.RemoveProblem(ctx, sheet.ID, problem.ID)
}

func (s *SheetService) resolvePair(ctx context.Context, sheetSlug, problemSlug string, actor *domain.Users) (*domain.Sheet, *domain.Problem, error) {
	sheet, err := s.ownedSheet(ctx, sheetSlug, actor)
	if err != nil {
		return nil, nil, err
	}
	problem, err := s.problemPort.GetBySlug(ctx, problemSlug)
	if err != nil {
		return nil, nil, err
	}
	if problem == nil {
		return nil, nil, errs.NotFound
	}
	return sheet, problem, nil
}

func (s *SheetService) ownedSheet(ctx context.Context, slug string, actor *domain.Users) (*domain.Sheet, error) {
	sheet, err := s.sheetPort.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		return nil, errs.NotFound
	}
	if actor.Role != domain.RoleAdmin && actor.ID != sheet.CreatedBy {
		return nil, errs.Forbidden
	}
	return sheet, nil
}
