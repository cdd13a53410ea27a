package secondary

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/domain"
)

// TokenStore holds single-use tokens (email verification, password
// reset) with a TTL. Consume removes the token atomically so a token
// can be redeemed at most once.
type TokenStore interface {
	Put(ctx context.Context, kind domain.TokenKind, token string, userID uuid.UUID, ttl time.Duration) error
	Consume(ctx context.Context, kind domain.TokenKind, token string) (uuid.UUID, error)
}
