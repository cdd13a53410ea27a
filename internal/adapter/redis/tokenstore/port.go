// package tokenstore keeps single-use account tokens in Redis with a TTL
package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/ports/secondary"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/static/errs"
)

const tokenKeyPrefix = "token:"

var _ secondary.TokenStore = (*TokenStore)(nil)

// TokenStore implements the TokenStore interface with Redis
type TokenStore struct {
	redisClient *redis.Client
	logger      primary.Logger
}

func New(redisClient *redis.Client, logger primary.Logger) *TokenStore {
	return &TokenStore{
		redisClient: redisClient,
		logger:      logger,
	}
}

func key(kind domain.TokenKind, token string) string {
	return fmt.Sprintf("%s%s:%s", tokenKeyPrefix, kind, token)
}

// Put stores the token with its TTL; expiry makes stale tokens vanish
// without a cleanup job
func (s *TokenStore) Put(ctx context.Context, kind domain.TokenKind, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.redisClient.Set(ctx, key(kind, token), userID.String(), ttl).Err(); err != nil {
		s.logger.Error("Failed to store token", "kind", kind, "error", err)
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// Consume redeems and deletes the token in one round trip so it cannot
// be used twice
func (s *TokenStore) Consume(ctx context.Context, kind domain.TokenKind, token string) (uuid.UUID, error) {
	value, err := s.redisClient.GetDel(ctx, key(kind, token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, errs.InvalidToken
		}
		s.logger.Error("Failed to consume token", "kind", kind, "error", err)
		return uuid.Nil, fmt.Errorf("failed to consume token: %w", err)
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errs.InvalidToken
	}
	return userID, nil
}
