package domain

type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderLocal  Provider = "local"
)

// AuthPayload is the claim set embedded in issued tokens
type AuthPayload struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
}

type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// TokenKind distinguishes the single-use tokens held in the token store
type TokenKind string

const (
	TokenKindEmailVerification TokenKind = "email-verification"
	TokenKindPasswordReset     TokenKind = "password-reset"
)
