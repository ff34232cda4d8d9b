package genie

import (
	"net/http"
	"strings"
	"testing"
)

func TestTranslateErrorByStatusCode(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusUnauthorized, "*genie.AuthenticationError"},
		{http.StatusForbidden, "*genie.AuthenticationError"},
		{http.StatusNotFound, "*genie.SpaceNotFoundError"},
		{http.StatusTooManyRequests, "*genie.RateLimitError"},
		{http.StatusInternalServerError, "*genie.APIError"},
	}

	for _, tt := range tests {
		err := translateError(tt.status, "something broke")
		if got := typeName(err); got != tt.want {
			t.Errorf("translateError(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestTranslateErrorByMessage(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"request UNAUTHORIZED by workspace", "*genie.AuthenticationError"},
		{"space abc not found", "*genie.SpaceNotFoundError"},
		{"Rate Limit exceeded, slow down", "*genie.RateLimitError"},
		{"upstream timed out", "*genie.TimeoutError"},
		{"socket closed unexpectedly", "*genie.APIError"},
	}

	for _, tt := range tests {
		err := translateError(0, tt.message)
		if got := typeName(err); got != tt.want {
			t.Errorf("translateError(0, %q) = %s, want %s", tt.message, got, tt.want)
		}
	}
}

// Authentication failures must tell the user which variables to check.
func TestAuthErrorIsActionable(t *testing.T) {
	err := translateError(http.StatusUnauthorized, "bad token")
	if !strings.Contains(err.Error(), "DATABRICKS_TOKEN") {
		t.Errorf("auth error should name the credential variables: %v", err)
	}
}

func TestRateLimitErrorNamesTheLimit(t *testing.T) {
	err := translateError(http.StatusTooManyRequests, "slow down")
	if !strings.Contains(err.Error(), "5 queries per minute") {
		t.Errorf("rate limit error should state the limit: %v", err)
	}
}

func TestAPIErrorFormat(t *testing.T) {
	withStatus := &APIError{StatusCode: 500, Message: "boom"}
	if got := withStatus.Error(); !strings.Contains(got, "HTTP 500") {
		t.Errorf("Error() = %q, want the status code", got)
	}
	plain := &APIError{Message: "boom"}
	if got := plain.Error(); strings.Contains(got, "HTTP") {
		t.Errorf("Error() = %q, want no status section", got)
	}
}

func typeName(err error) string {
	switch err.(type) {
	case *AuthenticationError:
		return "*genie.AuthenticationError"
	case *SpaceNotFoundError:
		return "*genie.SpaceNotFoundError"
	case *RateLimitError:
		return "*genie.RateLimitError"
	case *ValidationError:
		return "*genie.ValidationError"
	case *GenerationError:
		return "*genie.GenerationError"
	case *TimeoutError:
		return "*genie.TimeoutError"
	case *APIError:
		return "*genie.APIError"
	default:
		return "unknown"
	}
}
