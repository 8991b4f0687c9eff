package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/upgradechat/client-go/internal/apierrors"
)

// Defaults for client construction.
const (
	DefaultBaseURL    = "https://api.upgrade.chat"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3

	// defaultRetryAfter is used when a 429 response carries no
	// Retry-After header.
	defaultRetryAfter = 60
)

// Client is the HTTP transport for the Upgrade.Chat API. It owns the
// cached access token and serializes refreshes through a single-flight
// group so concurrent callers trigger at most one exchange.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	maxRetries   int
	logger       *zap.Logger

	mu    sync.RWMutex
	auth  *Auth
	group singleflight.Group
}

// Config holds construction parameters for the transport.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
	MaxRetries   int
	Logger       *zap.Logger
	// Auth seeds the token cache, skipping the initial exchange while
	// the supplied token remains valid.
	Auth *Auth
}

// NewClient creates a new transport.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, apierrors.ErrMissingCredentials
	}

	c := &Client{
		baseURL:      cfg.BaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   cfg.HTTPClient,
		maxRetries:   cfg.MaxRetries,
		logger:       cfg.Logger,
		auth:         cfg.Auth,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.maxRetries == 0 {
		c.maxRetries = DefaultMaxRetries
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	return c, nil
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Do issues an authenticated request and decodes the response into out.
//
// Status interpretation order: 429 is always checked first and retried
// after the server-declared delay, bounded by the retry budget. A 401 or
// 403 invalidates the cached token and retries the exchange plus request
// exactly once. A 404 maps to NotFoundError, any other non-2xx to
// APIError. A 2xx body that fails to decode maps to ValidationError.
//
// Requests to AuthTokenPath are the exchange itself: they skip token
// attachment and surface any non-2xx as AuthError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, form url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var (
		rateAttempts int
		reauthed     bool
	)

	operation := func() (struct{}, error) {
		var token string
		if path != AuthTokenPath {
			var err error
			token, err = c.Token(ctx)
			if err != nil {
				return struct{}{}, backoff.Permanent(err)
			}
		}

		req, err := c.buildRequest(ctx, method, endpoint, form, token)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return struct{}{}, backoff.Permanent(&apierrors.NetworkError{Err: err, URL: endpoint})
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return struct{}{}, backoff.Permanent(&apierrors.NetworkError{Err: err, URL: endpoint})
		}

		c.logger.Debug("request completed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))

		// 429 must be classified before anything else.
		if resp.StatusCode == http.StatusTooManyRequests {
			wait := retryAfterSeconds(resp)
			rateAttempts++
			if rateAttempts > c.maxRetries {
				return struct{}{}, backoff.Permanent(&apierrors.RateLimitError{
					Attempts:   rateAttempts,
					RetryAfter: time.Duration(wait) * time.Second,
				})
			}
			c.logger.Warn("rate limited, backing off",
				zap.String("path", path),
				zap.Int("retry_after_seconds", wait),
				zap.Int("attempt", rateAttempts))
			return struct{}{}, backoff.RetryAfter(wait)
		}

		if path == AuthTokenPath {
			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				msg := fmt.Sprintf("[%d] failed to authenticate with the Upgrade.Chat API", resp.StatusCode)
				if resp.StatusCode == http.StatusBadRequest {
					msg += " (make sure client ID and secret are correct)"
				}
				return struct{}{}, backoff.Permanent(&apierrors.AuthError{
					StatusCode: resp.StatusCode,
					Message:    msg,
				})
			}
		} else if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			if reauthed {
				return struct{}{}, backoff.Permanent(&apierrors.AuthError{
					StatusCode: resp.StatusCode,
					Message:    bodyMessage(body, "bearer token rejected"),
				})
			}
			reauthed = true
			c.logger.Warn("bearer token rejected, re-authenticating", zap.String("path", path))
			c.InvalidateToken()
			return struct{}{}, errRetryNow
		}

		if resp.StatusCode == http.StatusNotFound {
			return struct{}{}, backoff.Permanent(&apierrors.NotFoundError{
				StatusCode: resp.StatusCode,
				Message:    bodyMessage(body, "404 resource not found"),
			})
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return struct{}{}, backoff.Permanent(&apierrors.APIError{
				StatusCode: resp.StatusCode,
				Message:    bodyMessage(body, ""),
			})
		}

		if out != nil {
			if err := json.Unmarshal(body, out); err != nil {
				return struct{}{}, backoff.Permanent(&apierrors.ValidationError{Endpoint: path, Err: err})
			}
			if v, ok := out.(interface{ Validate() error }); ok {
				if err := v.Validate(); err != nil {
					return struct{}{}, backoff.Permanent(&apierrors.ValidationError{Endpoint: path, Err: err})
				}
			}
		}

		return struct{}{}, nil
	}

	// ZeroBackOff: the only waits we want are the server-declared
	// Retry-After durations, which override the backoff interval.
	_, err := backoff.Retry(ctx, operation, backoff.WithBackOff(&backoff.ZeroBackOff{}))
	return err
}

// errRetryNow marks a retryable condition with no associated delay
// (the single re-auth retry after a rejected token).
var errRetryNow = fmt.Errorf("retrying with fresh token")

func (c *Client) buildRequest(ctx context.Context, method, endpoint string, form url.Values, token string) (*http.Request, error) {
	var bodyReader io.Reader
	if form != nil {
		bodyReader = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// retryAfterSeconds reads the server-declared reset delay from a 429
// response, defaulting to 60 seconds when absent or malformed.
func retryAfterSeconds(resp *http.Response) int {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return defaultRetryAfter
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return defaultRetryAfter
	}
	return secs
}

// bodyMessage extracts a human-readable message from an error response
// body, falling back to the raw body and then to fallback.
func bodyMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return fallback
}
