package sheets

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/services/sheet"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/handlers"
	"gitlab.com/codelab.net/internal/handlers/response"
)

type createSheetRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      domain.SheetStatus `json:"status"`
}

type updateSheetRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      domain.SheetStatus `json:"status"`
}

type Handler struct {
	sheetService sheet.ISheetService
	logger       primary.Logger
}

func NewHandler(sheetService sheet.ISheetService, logger primary.Logger) *Handler {
	return &Handler{
		sheetService: sheetService,
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	verified := func(fn http.HandlerFunc) http.Handler {
		return mw.JWTMiddleware(mw.RequireVerified(fn))
	}

	router.HandleFunc("/api/sheets", h.List).Methods("GET")
	router.HandleFunc("/api/sheets/{slug}", h.Get).Methods("GET")

	router.Handle("/api/sheets", verified(h.Create)).Methods("POST")
	router.Handle("/api/sheets/{slug}", verified(h.Update)).Methods("PATCH")
	router.Handle("/api/sheets/{slug}", verified(h.Delete)).Methods("DELETE")
	router.Handle("/api/sheets/{slug}/problems/{problemSlug}", verified(h.AddProblem)).Methods("POST")
	router.Handle("/api/sheets/{slug}/problems/{problemSlug}", verified(h.RemoveProblem)).Methods("DELETE")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	// Anonymous callers only see public sheets
	usr := handlers.UserFromContext(r.Context())
	sheets, err := h.sheetService.List(r.Context(), usr)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "sheets", sheets)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	sh, err := h.sheetService.GetBySlug(r.Context(), slug)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "sheet", sh)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	usr := handlers.UserFromContext(r.Context())

	var req createSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid request body", StatusCode: http.StatusBadRequest})
		return
	}
	if req.Title == "" {
		response.WriteError(w, response.ErrorMessage{Message: "title is required", StatusCode: http.StatusBadRequest})
		return
	}

	sh := &domain.Sheet{
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   usr.ID,
		Status:      req.Status,
	}
	if err := h.sheetService.Create(r.Context(), sh); err != nil {
		h.logger.Error("Failed to create sheet", "title", req.Title, "error", err)
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusCreated, "sheet created", sh)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	usr := handlers.UserFromContext(r.Context())

	var req updateSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid request body", StatusCode: http.StatusBadRequest})
		return
	}

	if err := h.sheetService.Update(r.Context(), slug, usr, req.Title, req.Description, req.Status); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "sheet updated", nil)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	usr := handlers.UserFromContext(r.Context())

	if err := h.sheetService.Delete(r.Context(), slug, usr); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "sheet deleted", nil)
}

func (h *Handler) AddProblem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	usr := handlers.UserFromContext(r.Context())

	if err := h.sheetService.AddProblem(r.Context(), vars["slug"], vars["problemSlug"], usr); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "problem added to sheet", nil)
}

func (h *Handler) RemoveProblem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	usr := handlers.UserFromContext(r.Context())

	if err := h.sheetService.RemoveProblem(r.Context(), vars["slug"], vars["problemSlug"], usr); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "problem removed from sheet", nil)
}
