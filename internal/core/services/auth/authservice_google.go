package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/config"
	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/ports/secondary"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/static/errs"
)

var _ IAuthService = &googleAuthService{}

type googleAuthService struct {
	userPort    secondary.UserPort
	jwtProvider primary.JWTService
	Config      *config.GGAuthConfig
}

func NewGoogleAuthService(userPort secondary.UserPort, jwtProvider primary.JWTService, Config *config.GGAuthConfig) IAuthService {
	return &googleAuthService{
		userPort:    userPort,
		jwtProvider: jwtProvider,
		Config:      Config,
	}
}

func (g googleAuthService) ProviderName() domain.Provider {
	return domain.ProviderGoogle
}

// Login signs in an existing Google-linked account or provisions one on
// first sight. Google accounts are treated as email-verified.
func (g googleAuthService) Login(ctx context.Context, users *domain.Users) (string, error) {
	if users.GoogleID == nil {
		return "", errs.InvalidCredentials
	}
	if users.AuthProvider != string(domain.ProviderGoogle) {
		return "", errs.InvalidCredentials
	}
	if users.Email == "" {
		return "", errs.EmailRequired
	}

	usr, err := g.userPort.GetByGoogleID(ctx, *users.GoogleID)
	if err != nil {
		return "", err
	}
	if usr != nil {
		return generateToken(ctx, g.jwtProvider, usr)
	}

	users.ID = uuid.New()
	users.PasswordHash = nil
	users.UserName = strings.Split(users.Email, "@")[0]
	users.Role = domain.RoleUser
	users.AuthProvider = string(domain.ProviderGoogle)
	users.IsEmailVerified = true
	users.CreatedAt = time.Now()
	if err := g.userPort.Create(ctx, users); err != nil {
		return "", errs.FailedToCreateUser
	}

	return generateToken(ctx, g.jwtProvider, users)
}
