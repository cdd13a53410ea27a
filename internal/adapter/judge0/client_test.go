package judge0

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gitlab.com/codelab.net/internal/config"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/static/errs"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func newTestClient(serverURL, authToken string) *Client {
	return NewClient(&config.JudgeConfig{
		BaseURL:        serverURL,
		AuthToken:      authToken,
		RequestTimeout: time.Second,
	}, nopLogger{})
}

func TestSubmitBatchReturnsTokensInOrder(t *testing.T) {
	var gotBody struct {
		Submissions []domain.BatchSubmission `json:"submissions"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.URL.Query().Get("base64_encoded"); got != "false" {
			t.Errorf("base64_encoded = %q, want false", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"token":"tok-a"},{"token":"tok-b"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	tokens, err := client.SubmitBatch(context.Background(), []domain.BatchSubmission{
		{SourceCode: "code", LanguageID: 71, Stdin: "1", ExpectedOutput: "1"},
		{SourceCode: "code", LanguageID: 71, Stdin: "2", ExpectedOutput: "2"},
	})
	if err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	if len(tokens) != 2 || tokens[0] != "tok-a" || tokens[1] != "tok-b" {
		t.Fatalf("tokens = %v, want [tok-a tok-b]", tokens)
	}
	if len(gotBody.Submissions) != 2 {
		t.Fatalf("sent %d submissions, want 2", len(gotBody.Submissions))
	}
	if gotBody.Submissions[0].Stdin != "1" || gotBody.Submissions[1].Stdin != "2" {
		t.Errorf("submission order not preserved: %+v", gotBody.Submissions)
	}
}

func TestSubmitBatchSendsAuthToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Auth-Token"); got != "sekret" {
			t.Errorf("X-Auth-Token = %q, want sekret", got)
		}
		_, _ = w.Write([]byte(`[{"token":"tok-a"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "sekret")
	if _, err := client.SubmitBatch(context.Background(), []domain.BatchSubmission{{}}); err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
}

func TestSubmitBatchNon2xxIsJudgeUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	_, err := client.SubmitBatch(context.Background(), []domain.BatchSubmission{{}})
	if !errors.Is(err, errs.JudgeUnavailable) {
		t.Fatalf("err = %v, want JudgeUnavailable", err)
	}
}

func TestSubmitBatchTokenCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"token":"tok-a"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	_, err := client.SubmitBatch(context.Background(), []domain.BatchSubmission{{}, {}})
	if !errors.Is(err, errs.JudgeUnavailable) {
		t.Fatalf("err = %v, want JudgeUnavailable", err)
	}
}

func TestSubmitBatchConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL, "")
	_, err := client.SubmitBatch(context.Background(), []domain.BatchSubmission{{}})
	if !errors.Is(err, errs.JudgeUnavailable) {
		t.Fatalf("err = %v, want JudgeUnavailable", err)
	}
}

func TestFetchBatchQueriesAllTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		q := r.URL.Query()
		if got := q.Get("tokens"); got != "tok-a,tok-b" {
			t.Errorf("tokens = %q, want tok-a,tok-b", got)
		}
		if got := q.Get("fields"); got != "*" {
			t.Errorf("fields = %q, want *", got)
		}
		_, _ = w.Write([]byte(`{"submissions":[
			{"status":{"id":3,"description":"Accepted"},"stdout":"42\n","memory":1024.5,"time":"0.01"},
			{"status":{"id":6,"description":"Compilation Error"},"compile_output":"syntax error"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	results, err := client.FetchBatch(context.Background(), []string{"tok-a", "tok-b"})
	if err != nil {
		t.Fatalf("FetchBatch: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	first := results[0]
	if first.StatusID != StatusAccepted || first.Stdout != "42\n" {
		t.Errorf("first result = %+v", first)
	}
	if first.Memory != "1024.5" {
		t.Errorf("Memory = %q, want 1024.5", first.Memory)
	}
	second := results[1]
	if second.StatusID != StatusCompilationError || second.CompileOutput != "syntax error" {
		t.Errorf("second result = %+v", second)
	}
	if second.Memory != "" {
		t.Errorf("Memory = %q, want empty for null", second.Memory)
	}
}

func TestFetchBatchResultCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"submissions":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	_, err := client.FetchBatch(context.Background(), []string{"tok-a"})
	if !errors.Is(err, errs.JudgeUnavailable) {
		t.Fatalf("err = %v, want JudgeUnavailable", err)
	}
}
