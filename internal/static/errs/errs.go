package errs

import "errors"

var (
	InvalidCredentials = errors.New("invalid credentials")
	InternalError      = errors.New("internal error")
	GeneratingToken    = errors.New("error generating token")
	EmailRequired      = errors.New("email is required")
	FailedToCreateUser = errors.New("failed to create user")
	InvalidToken       = errors.New("invalid or expired token")
)

// Evaluation failure taxonomy. Callers distinguish judge infrastructure
// failures from verdicts with errors.Is on these values.
var (
	MalformedRequest    = errors.New("stdin and expected output counts differ")
	UnsupportedLanguage = errors.New("unsupported language")
	JudgeUnavailable    = errors.New("remote judge unavailable")
	JudgeTimeout        = errors.New("remote judge polling deadline exceeded")
)

var (
	NotFound       = errors.New("not found")
	AlreadyExists  = errors.New("already exists")
	Forbidden      = errors.New("access denied")
	SolutionFailed = errors.New("reference solution failed validation")
)
