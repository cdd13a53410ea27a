// package userrepository contains the PostgreSQL implementation of the
// user port
package userrepository

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

var _ secondary.UserPort = (*userRepo)(nil)

type userRepo struct {
	db     *sqlx.DB
	logger primary.Logger
}

func New(db *sqlx.DB, logger primary.Logger) secondary.UserPort {
	return &userRepo{
		db:     db,
		logger: logger,
	}
}

const userColumns = `id, user_name, email, password_hash, full_name, role,
	avatar_url, is_email_verified, auth_provider, google_id, created_at`

func (u *userRepo) Create(ctx context.Context, user *domain.Users) error {
	query := `
		INSERT INTO users (
			id, user_name, email, password_hash, full_name, role,
			avatar_url, is_email_verified, auth_provider, google_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := u.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.UserName,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Role,
		user.AvatarURL,
		user.IsEmailVerified,
		user.AuthProvider,
		user.GoogleID,
		user.CreatedAt,
	)
	if err != nil {
		u.logger.Error("Failed to create user", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (u *userRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Users, error) {
	return u.getBy(ctx, "id = $1", id)
}

func (u *userRepo) GetByEmail(ctx context.Context, email string) (*domain.Users, error) {
	return u.getBy(ctx, "email = $1", email)
}

func (u *userRepo) GetByUserName(ctx context.Context, userName string) (*domain.Users, error) {
	return u.getBy(ctx, "user_name = $1", userName)
}

func (u *userRepo) GetByGoogleID(ctx context.Context, googleID string) (*domain.Users, error) {
	return u.getBy(ctx, "google_id = $1", googleID)
}

func (u *userRepo) getBy(ctx context.Context, clause string, arg interface{}) (*domain.Users, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s", userColumns, clause)

	var user domain.Users
	err := u.db.GetContext(ctx, &user, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (u *userRepo) List(ctx context.Context) ([]*domain.Users, error) {
	query := fmt.Sprintf("SELECT %s FROM users ORDER BY created_at", userColumns)

	var users []*domain.Users
	if err := u.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (u *userRepo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	_, err := u.db.ExecContext(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		u.logger.Error("Failed to update role", "user", id, "error", err)
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

func (u *userRepo) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	_, err := u.db.ExecContext(ctx, `UPDATE users SET is_email_verified = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}

func (u *userRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := u.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
