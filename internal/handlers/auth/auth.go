package auth

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"gitlab.com/codelab.net/internal/config"
	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/services/auth"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/handlers/response"
)

type ServiceDependencies struct {
	GGAuthService    auth.IAuthService
	LocalAuthService auth.IAuthService
	AccountService   auth.IAccountService
}

// GoogleUser struct to decode Google API response
type GoogleUser struct {
	ID      string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullname"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type Handler struct {
	providerHandler map[domain.Provider]auth.IAuthService
	accountService  auth.IAccountService
	oauthConfig     *oauth2.Config
	logger          primary.Logger
}

func NewHandler(ggCfg *config.GGAuthConfig, logger primary.Logger) *Handler {
	return &Handler{
		providerHandler: make(map[domain.Provider]auth.IAuthService),
		oauthConfig: &oauth2.Config{
			ClientID:     ggCfg.ClientID,
			ClientSecret: ggCfg.ClientSecret,
			RedirectURL:  ggCfg.RedirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, svcDep *ServiceDependencies) {
	h.providerHandler[domain.ProviderGoogle] = svcDep.GGAuthService
	h.providerHandler[domain.ProviderLocal] = svcDep.LocalAuthService
	h.accountService = svcDep.AccountService

	router.HandleFunc("/api/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/api/auth/verify-email", h.VerifyEmail).Methods("POST")
	router.HandleFunc("/api/auth/forgot-password", h.ForgotPassword).Methods("POST")
	router.HandleFunc("/api/auth/reset-password", h.ResetPassword).Methods("POST")
	router.HandleFunc("/api/auth/google", h.GoogleLoginHandler).Methods("GET")
	router.HandleFunc("/api/auth/google/callback", h.GoogleCallbackHandler).Methods("GET")
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid request body", StatusCode: http.StatusBadRequest})
		return
	}
	if req.Username == "" || req.Password == "" {
		response.WriteError(w, response.ErrorMessage{Message: "username and password are required", StatusCode: http.StatusBadRequest})
		return
	}

	usr, verifyToken, err := h.accountService.Register(r.Context(), req.Username, req.Email, req.Password, req.FullName)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	// The verification token travels by email in production. It is
	// echoed back here until a mailer is wired up.
	response.WriteSuccess(w, http.StatusCreated, "registered", map[string]interface{}{
		"user":              usr,
		"verificationToken": verifyToken,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid request body", StatusCode: http.StatusBadRequest})
		return
	}

	token, err := h.providerHandler[domain.ProviderLocal].Login(r.Context(), &domain.Users{
		UserName:     req.Username,
		PasswordHash: &req.Password,
	})
	if err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid credentials", StatusCode: http.StatusUnauthorized})
		return
	}

	response.WriteSuccess(w, http.StatusOK, "logged in", domain.LoginResponse{Token: token})
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.WriteError(w, response.ErrorMessage{Message: "token is required", StatusCode: http.StatusBadRequest})
		return
	}
	if err := h.accountService.VerifyEmail(r.Context(), token); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "email verified", nil)
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid request body", StatusCode: http.StatusBadRequest})
		return
	}

	resetToken, err := h.accountService.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		// Do not reveal whether the email exists
		h.logger.Debug("forgot password lookup failed", "error", err)
	}
	response.WriteSuccess(w, http.StatusOK, "if the account exists, a reset token has been issued", map[string]interface{}{
		"resetToken": resetToken,
	})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid request body", StatusCode: http.StatusBadRequest})
		return
	}
	if req.Token == "" || req.Password == "" {
		response.WriteError(w, response.ErrorMessage{Message: "token and password are required", StatusCode: http.StatusBadRequest})
		return
	}
	if err := h.accountService.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "password updated", nil)
}

// GoogleLoginHandler redirects user to Google OAuth2 login
func (h *Handler) GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	url := h.oauthConfig.AuthCodeURL("randomstate")
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GoogleCallbackHandler handles Google OAuth2 callback
func (h *Handler) GoogleCallbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code := r.URL.Query().Get("code")
	if code == "" {
		response.WriteError(w, response.ErrorMessage{Message: "No code in URL", StatusCode: http.StatusBadRequest})
		return
	}

	token, err := h.oauthConfig.Exchange(ctx, code)
	if err != nil {
		h.logger.Error("google token exchange failed", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to get token", StatusCode: http.StatusInternalServerError})
		return
	}

	client := h.oauthConfig.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v3/userinfo")
	if err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "Failed to get user info", StatusCode: http.StatusInternalServerError})
		return
	}
	defer resp.Body.Close()

	var googleUser GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "Failed to decode user info", StatusCode: http.StatusInternalServerError})
		return
	}

	tokenStr, err := h.providerHandler[domain.ProviderGoogle].Login(ctx, &domain.Users{
		GoogleID:     &googleUser.ID,
		Email:        googleUser.Email,
		FullName:     googleUser.Name,
		AvatarURL:    googleUser.Picture,
		AuthProvider: string(domain.ProviderGoogle),
	})
	if err != nil {
		response.WriteError(w, response.ErrorMessage{Message: err.Error(), StatusCode: http.StatusUnauthorized})
		return
	}

	response.WriteSuccess(w, http.StatusOK, "logged in", domain.LoginResponse{Token: tokenStr})
}
