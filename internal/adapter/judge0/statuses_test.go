package judge0

import (
	"net/http"
	"testing"
)

func TestIsTerminal(t *testing.T) {
	for id := 1; id <= 14; id++ {
		want := id != StatusInQueue && id != StatusProcessing
		if got := IsTerminal(id); got != want {
			t.Errorf("IsTerminal(%d) = %v, want %v", id, got, want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		id   int
		want string
	}{
		{StatusAccepted, "Accepted"},
		{StatusWrongAnswer, "Wrong Answer"},
		{StatusTimeLimitExceeded, "Time Limit Exceeded"},
		{StatusCompilationError, "Compilation Error"},
		{11, "Runtime Error (NZEC)"},
		{99, "Unknown"},
	}
	for _, tc := range cases {
		if got := StatusLabel(tc.id); got != tc.want {
			t.Errorf("StatusLabel(%d) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestStatusHTTPCode(t *testing.T) {
	if got := StatusHTTPCode(StatusAccepted); got != http.StatusOK {
		t.Errorf("accepted = %d, want 200", got)
	}
	if got := StatusHTTPCode(13); got != http.StatusInternalServerError {
		t.Errorf("internal error = %d, want 500", got)
	}
	if got := StatusHTTPCode(99); got != http.StatusInternalServerError {
		t.Errorf("unknown = %d, want 500", got)
	}
}

func TestLanguageID(t *testing.T) {
	id, ok := LanguageID("python")
	if !ok || id != 71 {
		t.Errorf("LanguageID(python) = %d, %v, want 71, true", id, ok)
	}
	if _, ok := LanguageID("cobol"); ok {
		t.Error("LanguageID(cobol) should not resolve")
	}
}

func TestIsRuntimeError(t *testing.T) {
	for id := 7; id <= 12; id++ {
		if !IsRuntimeError(id) {
			t.Errorf("IsRuntimeError(%d) = false, want true", id)
		}
	}
	for _, id := range []int{StatusAccepted, StatusWrongAnswer, 13, 14} {
		if IsRuntimeError(id) {
			t.Errorf("IsRuntimeError(%d) = true, want false", id)
		}
	}
}
