package upgradechat

import (
	"errors"

	"github.com/upgradechat/client-go/internal/apierrors"
)

// errMissingData flags a 2xx response whose envelope lacks the data field.
var errMissingData = errors.New("missing data field")

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingCredentials is returned when no client ID or secret is provided.
	ErrMissingCredentials = apierrors.ErrMissingCredentials

	// ErrAuthenticationFailed is returned when the credential exchange
	// fails or the API rejects the bearer token twice in a row.
	ErrAuthenticationFailed = apierrors.ErrAuthenticationFailed

	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = apierrors.ErrNotFound

	// ErrRateLimited is returned when the API rate limit is exceeded and
	// the retry budget has been exhausted.
	ErrRateLimited = apierrors.ErrRateLimited

	// ErrInvalidResponse is returned when a response body does not match
	// the expected shape.
	ErrInvalidResponse = apierrors.ErrInvalidResponse

	// ErrInvalidLimit is returned when a page limit is outside [1, 100].
	ErrInvalidLimit = apierrors.ErrInvalidLimit

	// ErrNoMorePages is returned when a pager is advanced past its last page.
	ErrNoMorePages = apierrors.ErrNoMorePages
)

// APIError represents an HTTP error from the Upgrade.Chat API that does
// not fall into a more specific category.
type APIError = apierrors.APIError

// AuthError represents a failed credential exchange or repeated
// rejection of the bearer token.
type AuthError = apierrors.AuthError

// NotFoundError represents a 404 response from the API.
type NotFoundError = apierrors.NotFoundError

// RateLimitError is returned when the retry budget for 429 responses
// has been exhausted.
type RateLimitError = apierrors.RateLimitError

// NetworkError represents a network-level failure.
type NetworkError = apierrors.NetworkError

// ValidationError represents a response body that does not match the
// expected model shape.
type ValidationError = apierrors.ValidationError
