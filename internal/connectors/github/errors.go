package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/sectrack/internal/core/domain"
)

// GitHub-specific errors.
var (
	// ErrConfigMissingRepository indicates owner or repo is not configured.
	ErrConfigMissingRepository = errors.New("github: owner and repo are required")

	// ErrConfigInvalidCooldown indicates the cooldown is not a positive duration.
	ErrConfigInvalidCooldown = errors.New("github: invalid rate-limit cooldown")

	// ErrConfigInvalidRate indicates a negative request rate.
	ErrConfigInvalidRate = errors.New("github: invalid request rate")

	// ErrConfigInvalidBaseURL indicates the base URL could not be parsed.
	ErrConfigInvalidBaseURL = errors.New("github: invalid base URL")
)

// RateLimitError describes a rate-limited response.
// The client handles these internally; they surface only in logs and tests.
type RateLimitError struct {
	StatusCode int
	ResetAt    time.Time
	Remaining  int
	Limit      int
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return fmt.Sprintf("github: rate limit exceeded (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("github: rate limit exceeded (status %d), resets at %s",
		e.StatusCode, e.ResetAt.Format(time.RFC3339))
}

// APIError represents a GitHub API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Is lets callers outside this package match a 404 with domain.ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// isRateLimitStatus reports whether a status code means "out of requests".
func isRateLimitStatus(code int) bool {
	return code == http.StatusForbidden || code == http.StatusTooManyRequests
}
