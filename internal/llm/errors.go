package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit is a 429 from the provider. RetryAfter is zero when the
// provider sent no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the output was not a usable question: not JSON,
// missing content, or off-schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers transport failures and non-429 API errors.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means generation stopped at the token budget. The
// partial output is kept for the event log.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// classifyStatus maps an SDK error carrying an HTTP status to a typed error.
func classifyStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// ErrorKind is a short label for err used in logs: "rate_limit",
// "invalid_response", "unavailable", "truncated", "canceled" or "other".
func ErrorKind(err error) string {
	var (
		rl    *ErrRateLimit
		inv   *ErrInvalidResponse
		down  *ErrProviderUnavailable
		trunc *ErrMaxTokensExceeded
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.As(err, &rl):
		return "rate_limit"
	case errors.As(err, &trunc):
		return "truncated"
	case errors.As(err, &inv):
		return "invalid_response"
	case errors.As(err, &down):
		return "unavailable"
	default:
		return "other"
	}
}

// Retryable reports whether err may succeed on another attempt. Unknown
// errors count as transient; truncation and cancellation never do.
func Retryable(err error) bool {
	switch ErrorKind(err) {
	case "", "canceled", "truncated":
		return false
	}
	return true
}
