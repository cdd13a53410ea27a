package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/ports/secondary"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/handlers/response"
)

type contextKey string

const userContextKey contextKey = "authenticatedUser"

// UserFromContext returns the user attached by JWTMiddleware, or nil
// when the request was not authenticated.
func UserFromContext(ctx context.Context) *domain.Users {
	usr, _ := ctx.Value(userContextKey).(*domain.Users)
	return usr
}

// ContextWithUser attaches an authenticated user to a request context
func ContextWithUser(ctx context.Context, usr *domain.Users) context.Context {
	return context.WithValue(ctx, userContextKey, usr)
}

type MiddlewareProvider struct {
	jwtService primary.JWTService
	userPort   secondary.UserPort
}

func New(jwtService primary.JWTService, userPort secondary.UserPort) *MiddlewareProvider {
	return &MiddlewareProvider{
		jwtService: jwtService,
		userPort:   userPort,
	}
}

// JWTMiddleware authenticates a "Bearer <token>" header, resolves the
// account behind the claims and attaches it to the request context.
func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.WriteError(w, response.ErrorMessage{
				Message:    "Authorization header missing",
				StatusCode: http.StatusUnauthorized,
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		valid, err := m.jwtService.VerifyTokenHMAC(r.Context(), tokenString, "HS256")
		if err != nil || !valid {
			response.WriteError(w, response.ErrorMessage{
				Message:    "Invalid token",
				StatusCode: http.StatusUnauthorized,
			})
			return
		}

		payload, err := m.jwtService.DecodeTokenPayload(r.Context(), tokenString)
		if err != nil {
			response.WriteError(w, response.ErrorMessage{
				Message:    "Invalid token",
				StatusCode: http.StatusUnauthorized,
			})
			return
		}

		userID, err := uuid.Parse(payload.UserID)
		if err != nil {
			response.WriteError(w, response.ErrorMessage{
				Message:    "Invalid token",
				StatusCode: http.StatusUnauthorized,
			})
			return
		}

		usr, err := m.userPort.Get(r.Context(), userID)
		if err != nil || usr == nil {
			response.WriteError(w, response.ErrorMessage{
				Message:    "account no longer exists",
				StatusCode: http.StatusUnauthorized,
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), usr)))
	})
}

// RequireVerified rejects authenticated users whose email is not verified
func (m *MiddlewareProvider) RequireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		usr := UserFromContext(r.Context())
		if usr == nil {
			response.WriteError(w, response.ErrorMessage{
				Message:    "authentication required",
				StatusCode: http.StatusUnauthorized,
			})
			return
		}
		if !usr.IsEmailVerified {
			response.WriteError(w, response.ErrorMessage{
				Message:    "email verification required",
				StatusCode: http.StatusForbidden,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects users whose role is not in the allowed set
func (m *MiddlewareProvider) RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			usr := UserFromContext(r.Context())
			if usr == nil {
				response.WriteError(w, response.ErrorMessage{
					Message:    "authentication required",
					StatusCode: http.StatusUnauthorized,
				})
				return
			}
			for _, role := range roles {
				if usr.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.WriteError(w, response.ErrorMessage{
				Message:    "access denied",
				StatusCode: http.StatusForbidden,
			})
		})
	}
}
