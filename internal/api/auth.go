package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// AuthTokenPath is the OAuth client-credentials exchange endpoint.
const AuthTokenPath = "/oauth/token"

// Auth holds the tokens returned by the credential exchange. The expiry
// fields are millisecond epoch timestamps encoded as strings, mirroring
// the wire format.
type Auth struct {
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token"`
	AccessTokenExpiresIn  string `json:"access_token_expires_in"`
	RefreshTokenExpiresIn string `json:"refresh_token_expires_in"`
	Type                  string `json:"type"`
	TokenType             string `json:"token_type"`
}

// AccessTokenExpiresAt returns the access token expiry time. The zero
// time is returned when the expiry field is missing or malformed.
func (a *Auth) AccessTokenExpiresAt() time.Time {
	return msEpochTime(a.AccessTokenExpiresIn)
}

// RefreshTokenExpiresAt returns the refresh token expiry time.
func (a *Auth) RefreshTokenExpiresAt() time.Time {
	return msEpochTime(a.RefreshTokenExpiresIn)
}

// AccessTokenExpired reports whether the access token can no longer be
// used. A token with an unparseable expiry is treated as expired.
func (a *Auth) AccessTokenExpired() bool {
	return !time.Now().Before(a.AccessTokenExpiresAt())
}

// RefreshTokenExpired reports whether the refresh token has expired.
func (a *Auth) RefreshTokenExpired() bool {
	return !time.Now().Before(a.RefreshTokenExpiresAt())
}

// Validate checks the response shape after a credential exchange.
func (a *Auth) Validate() error {
	if a.AccessToken == "" {
		return fmt.Errorf("missing access_token")
	}
	if _, err := strconv.ParseInt(a.AccessTokenExpiresIn, 10, 64); err != nil {
		return fmt.Errorf("malformed access_token_expires_in %q", a.AccessTokenExpiresIn)
	}
	return nil
}

func msEpochTime(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// Token returns a valid bearer token, performing a credential exchange
// when the cached token is absent or expired.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.RLock()
	auth := c.auth
	c.mu.RUnlock()

	if auth != nil && !auth.AccessTokenExpired() {
		return auth.AccessToken, nil
	}

	auth, err := c.Authenticate(ctx)
	if err != nil {
		return "", err
	}
	return auth.AccessToken, nil
}

// Authenticate performs the client-credentials exchange and caches the
// result. Concurrent callers share a single in-flight exchange; callers
// arriving while the cached token is still fresh get the cache without
// a network round trip.
func (c *Client) Authenticate(ctx context.Context) (*Auth, error) {
	v, err, _ := c.group.Do("oauth-token", func() (interface{}, error) {
		c.mu.RLock()
		cached := c.auth
		c.mu.RUnlock()
		if cached != nil && !cached.AccessTokenExpired() {
			c.logger.Debug("reusing cached access token",
				zap.Time("expires_at", cached.AccessTokenExpiresAt()))
			return cached, nil
		}

		form := url.Values{}
		form.Set("client_id", c.clientID)
		form.Set("client_secret", c.clientSecret)
		form.Set("grant_type", "client_credentials")

		var auth Auth
		if err := c.Do(ctx, http.MethodPost, AuthTokenPath, nil, form, &auth); err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.auth = &auth
		c.mu.Unlock()

		c.logger.Info("obtained access token",
			zap.String("token_type", auth.TokenType),
			zap.Time("expires_at", auth.AccessTokenExpiresAt()))
		return &auth, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Auth), nil
}

// InvalidateToken drops the cached token so the next request performs a
// fresh exchange. Used when the API rejects the current bearer token.
func (c *Client) InvalidateToken() {
	c.mu.Lock()
	c.auth = nil
	c.mu.Unlock()
}

// Auth returns the currently cached token, or nil when none is held.
func (c *Client) Auth() *Auth {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.auth
}
