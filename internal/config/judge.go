package config

import "time"

// JudgeConfig configures the remote judge client and the polling loop.
// The language table is deployment data: it must match the language ids
// of whatever Judge0 backend the base URL points at.
type JudgeConfig struct {
	BaseURL         string
	AuthToken       string
	PollInterval    time.Duration
	MaxPollAttempts int
	RequestTimeout  time.Duration
}

func NewJudgeConfig() *JudgeConfig {
	return &JudgeConfig{
		BaseURL:         strEnv("JUDGE0_API_URL", "http://localhost:2358/submissions/batch"),
		AuthToken:       strEnv("JUDGE0_AUTH_TOKEN", ""),
		PollInterval:    time.Duration(intEnv("JUDGE0_POLL_INTERVAL_SEC", 2)) * time.Second,
		MaxPollAttempts: intEnv("JUDGE0_MAX_POLL_ATTEMPTS", 30),
		RequestTimeout:  time.Duration(intEnv("JUDGE0_REQUEST_TIMEOUT_SEC", 10)) * time.Second,
	}
}
