package judge0

import "net/http"

// Remote judge status ids. 1 and 2 are the only non-terminal states.
const (
	StatusInQueue           = 1
	StatusProcessing        = 2
	StatusAccepted          = 3
	StatusWrongAnswer       = 4
	StatusTimeLimitExceeded = 5
	StatusCompilationError  = 6
)

// StatusInfo carries the label and the HTTP status used when a judge
// status is surfaced as an API error (solution validation)
type StatusInfo struct {
	Label      string
	HTTPStatus int
}

var statusTable = map[int]StatusInfo{
	StatusInQueue:           {Label: "In Queue", HTTPStatus: http.StatusAccepted},
	StatusProcessing:        {Label: "Processing", HTTPStatus: http.StatusAccepted},
	StatusAccepted:          {Label: "Accepted", HTTPStatus: http.StatusOK},
	StatusWrongAnswer:       {Label: "Wrong Answer", HTTPStatus: http.StatusBadRequest},
	StatusTimeLimitExceeded: {Label: "Time Limit Exceeded", HTTPStatus: http.StatusRequestTimeout},
	StatusCompilationError:  {Label: "Compilation Error", HTTPStatus: http.StatusBadRequest},
	7:                       {Label: "Runtime Error (SIGSEGV)", HTTPStatus: http.StatusBadRequest},
	8:                       {Label: "Runtime Error (SIGXFSZ)", HTTPStatus: http.StatusBadRequest},
	9:                       {Label: "Runtime Error (SIGFPE)", HTTPStatus: http.StatusBadRequest},
	10:                      {Label: "Runtime Error (SIGABRT)", HTTPStatus: http.StatusBadRequest},
	11:                      {Label: "Runtime Error (NZEC)", HTTPStatus: http.StatusBadRequest},
	12:                      {Label: "Runtime Error (Other)", HTTPStatus: http.StatusBadRequest},
	13:                      {Label: "Internal Error", HTTPStatus: http.StatusInternalServerError},
	14:                      {Label: "Exec Format Error", HTTPStatus: http.StatusInternalServerError},
}

// StatusLabel returns the human-readable label for a judge status id
func StatusLabel(id int) string {
	if info, ok := statusTable[id]; ok {
		return info.Label
	}
	return "Unknown"
}

// StatusHTTPCode returns the HTTP status associated with a judge status id
func StatusHTTPCode(id int) int {
	if info, ok := statusTable[id]; ok {
		return info.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsTerminal reports whether a status will no longer change on
// subsequent polls
func IsTerminal(id int) bool {
	return id != StatusInQueue && id != StatusProcessing
}

// IsRuntimeError reports whether a status id is one of the runtime
// error categories
func IsRuntimeError(id int) bool {
	return id >= 7 && id <= 12
}
