package genie

import (
	"fmt"
	"net/http"
	"strings"
)

// The error taxonomy for remote Genie operations. Transport errors are
// pattern-matched on status code and message text and translated into
// one of these types with an actionable message; anything unrecognized
// passes through as an APIError rather than being swallowed.

// AuthenticationError means the workspace rejected our credentials.
type AuthenticationError struct{ Message string }

func (e *AuthenticationError) Error() string { return e.Message }

// SpaceNotFoundError means the requested remote resource does not exist.
type SpaceNotFoundError struct{ Message string }

func (e *SpaceNotFoundError) Error() string { return e.Message }

// RateLimitError is a remote-side 429. The local limiter prevents most
// of these but cannot guarantee zero.
type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }

// ValidationError means a document failed schema or SQL checks.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// GenerationError means an upstream text-completion call failed or
// returned unparseable output.
type GenerationError struct{ Message string }

func (e *GenerationError) Error() string { return e.Message }

// TimeoutError is a local long-poll deadline exceeded — distinct from a
// remote-reported FAILED status.
type TimeoutError struct{ Message string }

func (e *TimeoutError) Error() string { return e.Message }

// APIError is an uncategorized remote failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("Databricks API error (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("Databricks API error: %s", e.Message)
}

// translateError maps a remote failure into the taxonomy. statusCode may
// be zero for transport-level failures; message is matched
// case-insensitively on its textual signals.
func translateError(statusCode int, message string) error {
	lower := strings.ToLower(message)

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden ||
		strings.Contains(lower, "authentication") || strings.Contains(lower, "unauthorized"):
		return &AuthenticationError{Message: fmt.Sprintf(
			"Authentication failed: %s. Check DATABRICKS_TOKEN or DATABRICKS_CLIENT_ID/DATABRICKS_CLIENT_SECRET in your environment or .env file.",
			message)}
	case statusCode == http.StatusNotFound || strings.Contains(lower, "not found"):
		return &SpaceNotFoundError{Message: fmt.Sprintf("Resource not found: %s", message)}
	case statusCode == http.StatusTooManyRequests || strings.Contains(lower, "rate limit"):
		return &RateLimitError{Message: fmt.Sprintf(
			"Rate limit exceeded: %s. The Genie API allows 5 queries per minute.", message)}
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "timed out"):
		return &TimeoutError{Message: fmt.Sprintf("Operation timed out: %s", message)}
	default:
		return &APIError{StatusCode: statusCode, Message: message}
	}
}
