package submissions

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/services/submission"
	"gitlab.com/codelab.net/internal/handlers"
	"gitlab.com/codelab.net/internal/handlers/response"
)

type executeRequest struct {
	SourceCode string `json:"sourceCode"`
	Language   string `json:"language"`
}

type Handler struct {
	submissionService submission.ISubmissionService
	logger            primary.Logger
}

func NewHandler(submissionService submission.ISubmissionService, logger primary.Logger) *Handler {
	return &Handler{
		submissionService: submissionService,
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	verified := func(fn http.HandlerFunc) http.Handler {
		return mw.JWTMiddleware(mw.RequireVerified(fn))
	}

	router.Handle("/api/problems/{slug}/run", verified(h.Run)).Methods("POST")
	router.Handle("/api/problems/{slug}/submit", verified(h.Submit)).Methods("POST")
	router.Handle("/api/submissions", mw.JWTMiddleware(http.HandlerFunc(h.ListMine))).Methods("GET")
	router.Handle("/api/submissions/{id}", mw.JWTMiddleware(http.HandlerFunc(h.Get))).Methods("GET")
}

func (h *Handler) decodeExecuteRequest(w http.ResponseWriter, r *http.Request) (executeRequest, bool) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid request body", StatusCode: http.StatusBadRequest})
		return req, false
	}
	if req.SourceCode == "" || req.Language == "" {
		response.WriteError(w, response.ErrorMessage{
			Message:    "sourceCode and language are required",
			StatusCode: http.StatusBadRequest,
		})
		return req, false
	}
	return req, true
}

// Run executes code against the problem's visible test cases without
// recording anything.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	req, ok := h.decodeExecuteRequest(w, r)
	if !ok {
		return
	}

	eval, err := h.submissionService.Run(r.Context(), slug, req.SourceCode, req.Language)
	if err != nil {
		h.logger.Error("Run failed", "problem", slug, "error", err)
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "executed", eval)
}

// Submit executes code against all test cases and records the attempt.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	usr := handlers.UserFromContext(r.Context())
	req, ok := h.decodeExecuteRequest(w, r)
	if !ok {
		return
	}

	sub, err := h.submissionService.Submit(r.Context(), usr.ID, slug, req.SourceCode, req.Language)
	if err != nil {
		h.logger.Error("Submit failed", "problem", slug, "user", usr.ID, "error", err)
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "submitted", sub)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	usr := handlers.UserFromContext(r.Context())
	subs, err := h.submissionService.ListMine(r.Context(), usr.ID)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "submissions", subs)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	usr := handlers.UserFromContext(r.Context())
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid submission id", StatusCode: http.StatusBadRequest})
		return
	}

	sub, err := h.submissionService.Get(r.Context(), usr.ID, id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "submission", sub)
}
