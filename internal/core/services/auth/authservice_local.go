package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/ports/secondary"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/global/logger"
	"gitlab.com/codelab.net/internal/static/errs"
)

const tokenTTL = 5 * time.Minute

var _ IAuthService = &localAuthService{}
var _ IAccountService = &localAuthService{}

type localAuthService struct {
	userPort    secondary.UserPort
	tokenStore  secondary.TokenStore
	jwtProvider primary.JWTService
}

func NewLocalAuthService(
	userPort secondary.UserPort,
	tokenStore secondary.TokenStore,
	jwtProvider primary.JWTService,
) *localAuthService {
	return &localAuthService{
		userPort:    userPort,
		tokenStore:  tokenStore,
		jwtProvider: jwtProvider,
	}
}

func (g localAuthService) ProviderName() domain.Provider {
	return domain.ProviderLocal
}

func (g localAuthService) Login(ctx context.Context, users *domain.Users) (string, error) {
	usr, err := g.userPort.GetByUserName(ctx, users.UserName)
	if err != nil {
		return "", err
	}
	if usr == nil || usr.PasswordHash == nil {
		return "", errs.InvalidCredentials
	}
	valid, err := g.jwtProvider.VerifyPassword(ctx, *usr.PasswordHash, *users.PasswordHash)
	if err != nil || !valid {
		return "", errs.InvalidCredentials
	}

	return generateToken(ctx, g.jwtProvider, usr)
}

// Register creates a local account and mints an email verification token.
// Delivery of the token is an external concern; it is returned so the
// caller can hand it to the mailer.
func (g localAuthService) Register(ctx context.Context, username, email, password, fullname string) (*domain.Users, string, error) {
	if email == "" {
		return nil, "", errs.EmailRequired
	}
	if existing, err := g.userPort.GetByUserName(ctx, username); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", errs.AlreadyExists
	}
	if existing, err := g.userPort.GetByEmail(ctx, email); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", errs.AlreadyExists
	}

	hash, err := g.jwtProvider.EncryptPassword(ctx, password)
	if err != nil {
		return nil, "", errs.InternalError
	}

	user := &domain.Users{
		ID:           uuid.New(),
		UserName:     username,
		Email:        email,
		PasswordHash: &hash,
		FullName:     fullname,
		Role:         domain.RoleUser,
		AuthProvider: string(domain.ProviderLocal),
		CreatedAt:    time.Now(),
	}
	if err := g.userPort.Create(ctx, user); err != nil {
		logger.Error("Failed to create user", "username", username, "error", err)
		return nil, "", errs.FailedToCreateUser
	}

	verifyToken, err := g.mintToken(ctx, domain.TokenKindEmailVerification, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, verifyToken, nil
}

func (g localAuthService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := g.tokenStore.Consume(ctx, domain.TokenKindEmailVerification, token)
	if err != nil {
		return errs.InvalidToken
	}
	return g.userPort.MarkEmailVerified(ctx, userID)
}

func (g localAuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	usr, err := g.userPort.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if usr == nil {
		return "", errs.NotFound
	}
	return g.mintToken(ctx, domain.TokenKindPasswordReset, usr.ID)
}

func (g localAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := g.tokenStore.Consume(ctx, domain.TokenKindPasswordReset, token)
	if err != nil {
		return errs.InvalidToken
	}
	hash, err := g.jwtProvider.EncryptPassword(ctx, newPassword)
	if err != nil {
		return errs.InternalError
	}
	return g.userPort.UpdatePassword(ctx, userID, hash)
}

func (g localAuthService) mintToken(ctx context.Context, kind domain.TokenKind, userID uuid.UUID) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", errs.InternalError
	}
	token := hex.EncodeToString(raw)
	if err := g.tokenStore.Put(ctx, kind, token, userID, tokenTTL); err != nil {
		return "", err
	}
	return token, nil
}

func generateToken(ctx context.Context, jwtProvider primary.JWTService, user *domain.Users) (string, error) {
	authPayload := domain.AuthPayload{
		UserID:   user.ID.String(),
		Username: user.UserName,
		Role:     string(user.Role),
		Verified: user.IsEmailVerified,
	}

	raw, err := json.Marshal(authPayload)
	if err != nil {
		return "", errs.InternalError
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		logger.Error("Failed to unmarshal auth payload", "error", err)
		return "", errs.InternalError
	}
	token, err := jwtProvider.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, payload)
	if err != nil {
		return "", errs.GeneratingToken
	}
	return token, nil
}
