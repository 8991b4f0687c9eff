// Package apierrors provides shared error types for the Upgrade.Chat client.
package apierrors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingCredentials is returned when no client ID or secret is provided.
	ErrMissingCredentials = errors.New("client ID and secret are required")

	// ErrAuthenticationFailed is returned when the credential exchange fails
	// or the API rejects the bearer token twice in a row.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited is returned when the API rate limit is exceeded and
	// the retry budget has been exhausted.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidResponse is returned when a response body does not match
	// the expected shape.
	ErrInvalidResponse = errors.New("invalid response body")

	// ErrInvalidLimit is returned when a page limit is outside [1, 100].
	ErrInvalidLimit = errors.New("limit must be between 1 and 100")

	// ErrNoMorePages is returned when a pager is advanced past its last page.
	ErrNoMorePages = errors.New("no more pages")
)

// APIError represents an HTTP error from the Upgrade.Chat API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrAuthenticationFailed
	case 404:
		return target == ErrNotFound
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// AuthError represents a failed credential exchange or repeated
// rejection of the bearer token.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (%d): %s", e.StatusCode, e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// NotFoundError represents a 404 response from the API.
type NotFoundError struct {
	StatusCode int
	Message    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found (%d): %s", e.StatusCode, e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RateLimitError is returned when the retry budget for 429 responses
// has been exhausted.
type RateLimitError struct {
	Attempts   int
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded after %d attempts (server asked to retry after %v)",
		e.Attempts, e.RetryAfter)
}

// Is implements errors.Is for sentinel error matching.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError represents a response body that does not match the
// expected model shape. It is distinct from HTTP failures: the request
// itself succeeded.
type ValidationError struct {
	Endpoint string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid response body from %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidResponse
}
