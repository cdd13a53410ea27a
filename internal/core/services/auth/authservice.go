package auth

import (
	"context"

	"gitlab.com/codelab.net/internal/domain"
)

type IAuthService interface {
	ProviderName() domain.Provider
	Login(ctx context.Context, users *domain.Users) (string, error)
}

// IAccountService covers the local-account lifecycle around login:
// registration and the single-use token flows.
type IAccountService interface {
	Register(ctx context.Context, username, email, password, fullname string) (*domain.Users, string, error)
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}
