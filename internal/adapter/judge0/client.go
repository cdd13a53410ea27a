// package judge0 is the HTTP adapter for a Judge0 deployment
package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gitlab.com/codelab.net/internal/config"
	"gitlab.com/codelab.net/internal/core/ports/primary"
	"gitlab.com/codelab.net/internal/core/ports/secondary"
	"gitlab.com/codelab.net/internal/domain"
	"gitlab.com/codelab.net/internal/static/errs"
)

var _ secondary.RemoteJudge = (*Client)(nil)

// Client talks to the Judge0 batch submission API. The embedded
// http.Client is safe for concurrent use and shared across evaluations.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	logger     primary.Logger
}

func NewClient(cfg *config.JudgeConfig, logger primary.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		authToken: cfg.AuthToken,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

type submitBatchRequest struct {
	Submissions []domain.BatchSubmission `json:"submissions"`
}

type tokenEntry struct {
	Token string `json:"token"`
}

type statusEntry struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type submissionEntry struct {
	Status        statusEntry `json:"status"`
	Stdout        string      `json:"stdout"`
	Stderr        string      `json:"stderr"`
	CompileOutput string      `json:"compile_output"`
	Memory        *float64    `json:"memory"`
	Time          string      `json:"time"`
}

type fetchBatchResponse struct {
	Submissions []submissionEntry `json:"submissions"`
}

// SubmitBatch posts one batch and returns the tokens in submission order
func (c *Client) SubmitBatch(ctx context.Context, submissions []domain.BatchSubmission) ([]string, error) {
	body, err := json.Marshal(submitBatchRequest{Submissions: submissions})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch: %w", err)
	}

	reqURL := c.baseURL + "?base64_encoded=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Judge submit request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", errs.JudgeUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Judge submit returned non-2xx", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: submit returned status %d", errs.JudgeUnavailable, resp.StatusCode)
	}

	var entries []tokenEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: failed to decode tokens: %v", errs.JudgeUnavailable, err)
	}
	if len(entries) != len(submissions) {
		return nil, fmt.Errorf("%w: got %d tokens for %d submissions", errs.JudgeUnavailable, len(entries), len(submissions))
	}

	tokens := make([]string, len(entries))
	for i, entry := range entries {
		tokens[i] = entry.Token
	}
	return tokens, nil
}

// FetchBatch queries all tokens at once and returns results in token order
func (c *Client) FetchBatch(ctx context.Context, tokens []string) ([]domain.RawJudgeResult, error) {
	params := url.Values{}
	params.Set("tokens", strings.Join(tokens, ","))
	params.Set("base64_encoded", "false")
	params.Set("fields", "*")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Judge fetch request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", errs.JudgeUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Judge fetch returned non-2xx", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: fetch returned status %d", errs.JudgeUnavailable, resp.StatusCode)
	}

	var payload fetchBatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode results: %v", errs.JudgeUnavailable, err)
	}
	if len(payload.Submissions) != len(tokens) {
		return nil, fmt.Errorf("%w: got %d results for %d tokens", errs.JudgeUnavailable, len(payload.Submissions), len(tokens))
	}

	results := make([]domain.RawJudgeResult, len(payload.Submissions))
	for i, entry := range payload.Submissions {
		results[i] = domain.RawJudgeResult{
			StatusID:          entry.Status.ID,
			StatusDescription: entry.Status.Description,
			Stdout:            entry.Stdout,
			Stderr:            entry.Stderr,
			CompileOutput:     entry.CompileOutput,
			Memory:            formatMemory(entry.Memory),
			Time:              entry.Time,
		}
	}
	return results, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.authToken != "" {
		req.Header.Set("X-Auth-Token", c.authToken)
	}
}

func formatMemory(memory *float64) string {
	if memory == nil {
		return ""
	}
	return strconv.FormatFloat(*memory, 'f', -1, 64)
}
