package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/codelab.net/internal/static/errs"
)

// APIResponse is the success envelope returned by every endpoint
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

type ErrorMessage struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(err)
}

func WriteSuccess(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

// WriteServiceError maps service-layer errors to HTTP statuses. Judge
// infrastructure failures get a retry hint so a broken judge is never
// mistaken for a wrong answer.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.MalformedRequest), errors.Is(err, errs.UnsupportedLanguage):
		WriteError(w, ErrorMessage{Message: err.Error(), StatusCode: http.StatusBadRequest})
	case errors.Is(err, errs.JudgeTimeout):
		WriteError(w, ErrorMessage{
			Message:    "code execution timed out on the judge, please try again",
			StatusCode: http.StatusRequestTimeout,
		})
	case errors.Is(err, errs.JudgeUnavailable):
		WriteError(w, ErrorMessage{
			Message:    "code execution service is unavailable, please try again",
			StatusCode: http.StatusBadGateway,
		})
	case errors.Is(err, errs.NotFound):
		WriteError(w, ErrorMessage{Message: err.Error(), StatusCode: http.StatusNotFound})
	case errors.Is(err, errs.AlreadyExists):
		WriteError(w, ErrorMessage{Message: err.Error(), StatusCode: http.StatusConflict})
	case errors.Is(err, errs.Forbidden):
		WriteError(w, ErrorMessage{Message: err.Error(), StatusCode: http.StatusForbidden})
	case errors.Is(err, errs.InvalidCredentials), errors.Is(err, errs.InvalidToken):
		WriteError(w, ErrorMessage{Message: err.Error(), StatusCode: http.StatusUnauthorized})
	case errors.Is(err, errs.SolutionFailed), errors.Is(err, errs.EmailRequired):
		WriteError(w, ErrorMessage{Message: err.Error(), StatusCode: http.StatusBadRequest})
	default:
		WriteError(w, ErrorMessage{Message: "internal server error", StatusCode: http.StatusInternalServerError})
	}
}
