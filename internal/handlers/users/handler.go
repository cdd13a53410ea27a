package users

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/services/user"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/handlers"
	"gitlab.com/codelab.net/internal/handlers/response"
)

type assignRoleRequest struct {
	Role domain.Role `json:"role"`
}

type Handler struct {
	userService user.IUserService
	logger      primary.Logger
}

func NewHandler(userService user.IUserService, logger primary.Logger) *Handler {
	return &Handler{
		userService: userService,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	admin := func(fn http.HandlerFunc) http.Handler {
		return mw.JWTMiddleware(mw.RequireRole(domain.RoleAdmin)(fn))
	}

	router.Handle("/api/users/me", mw.JWTMiddleware(http.HandlerFunc(h.Me))).Methods("GET")
	router.Handle("/api/users", admin(h.List)).Methods("GET")
	router.Handle("/api/users/{id}/role", admin(h.AssignRole)).Methods("PATCH")
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	usr := handlers.UserFromContext(r.Context())
	response.WriteSuccess(w, http.StatusOK, "profile", usr)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "users", users)
}

func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	actor := handlers.UserFromContext(r.Context())
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid user id", StatusCode: http.StatusBadRequest})
		return
	}

	var req assignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid request body", StatusCode: http.StatusBadRequest})
		return
	}
	switch req.Role {
	case domain.RoleAdmin, domain.RoleProblemManager, domain.RoleUser:
	default:
		response.WriteError(w, response.ErrorMessage{Message: "unknown role", StatusCode: http.StatusBadRequest})
		return
	}

	if err := h.userService.AssignRole(r.Context(), actor, id, req.Role); err != nil {
		h.logger.Error("Failed to assign role", "user", id, "role", req.Role, "error", err)
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "role updated", nil)
}
