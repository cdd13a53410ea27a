package problems

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/services/problem"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/handlers"
	"gitlab.com/codelab.net/internal/handlers/response"
)

type Handler struct {
	problemService problem.IProblemService
	logger         primary.Logger
}

func NewHandler(problemService problem.IProblemService, logger primary.Logger) *Handler {
	return &Handler{
		problemService: problemService,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	authed := func(fn http.HandlerFunc) http.Handler {
		return mw.JWTMiddleware(fn)
	}
	managed := func(fn http.HandlerFunc) http.Handler {
		return mw.JWTMiddleware(mw.RequireVerified(fn))
	}

	router.HandleFunc("/api/problems", h.List).Methods("GET")
	router.Handle("/api/problems/user/solved", authed(h.Solved)).Methods("GET")
	router.HandleFunc("/api/problems/{slug}", h.Get).Methods("GET")

	router.Handle("/api/problems", managed(h.Create)).Methods("POST")
	router.Handle("/api/problems/{slug}/information", managed(h.UpdateInformation)).Methods("PATCH")
	router.Handle("/api/problems/{slug}/editorial", managed(h.UpdateEditorial)).Methods("PATCH")
	router.Handle("/api/problems/{slug}/testcases", managed(h.UpdateTestCases)).Methods("PATCH")
	router.Handle("/api/problems/{slug}", managed(h.Delete)).Methods("DELETE")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.problemService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list problems", "error", err)
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "problems", summaries)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	prob, err := h.problemService.GetBySlug(r.Context(), slug)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	// Locked test cases and reference solutions never leave the server
	prob.TestCases = prob.UnlockedTestCases()
	for i := range prob.CodeInformations {
		prob.CodeInformations[i].Solution = ""
	}
	response.WriteSuccess(w, http.StatusOK, "problem", prob)
}

func (h *Handler) Solved(w http.ResponseWriter, r *http.Request) {
	usr := handlers.UserFromContext(r.Context())
	summaries, err := h.problemService.SolvedProblems(r.Context(), usr.ID)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "solved problems", summaries)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	usr := handlers.UserFromContext(r.Context())
	if !usr.CanManageProblems() {
		response.WriteError(w, response.ErrorMessage{Message: "access denied", StatusCode: http.StatusForbidden})
		return
	}

	var req createProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid request body", StatusCode: http.StatusBadRequest})
		return
	}
	if req.Title == "" || len(req.TestCases) == 0 || len(req.CodeInformations) == 0 {
		response.WriteError(w, response.ErrorMessage{
			Message:    "title, test cases and code informations are required",
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	prob := req.toDomain(usr)
	if err := h.problemService.Create(r.Context(), prob); err != nil {
		h.logger.Error("Failed to create problem", "title", req.Title, "error", err)
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusCreated, "problem created", prob)
}

func (h *Handler) UpdateInformation(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	usr := handlers.UserFromContext(r.Context())

	var req updateInformationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid request body", StatusCode: http.StatusBadRequest})
		return
	}

	if err := h.problemService.UpdateInformation(r.Context(), slug, usr, req.toUpdate()); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "problem updated", nil)
}

func (h *Handler) UpdateEditorial(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	usr := handlers.UserFromContext(r.Context())

	var editorial domain.Editorial
	if err := json.NewDecoder(r.Body).Decode(&editorial); err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid request body", StatusCode: http.StatusBadRequest})
		return
	}

	if err := h.problemService.UpdateEditorial(r.Context(), slug, usr, editorial); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "editorial updated", nil)
}

func (h *Handler) UpdateTestCases(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	usr := handlers.UserFromContext(r.Context())

	var req updateTestCasesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid request body", StatusCode: http.StatusBadRequest})
		return
	}
	if len(req.TestCases) == 0 {
		response.WriteError(w, response.ErrorMessage{Message: "test cases are required", StatusCode: http.StatusBadRequest})
		return
	}

	if err := h.problemService.UpdateTestCases(r.Context(), slug, usr, req.TestCases, req.CodeInformations); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "test cases updated", nil)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	usr := handlers.UserFromContext(r.Context())

	if err := h.problemService.Delete(r.Context(), slug, usr); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "problem deleted", nil)
}
