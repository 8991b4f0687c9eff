package upgradechat

import (
	"context"

	"github.com/upgradechat/client-go/internal/api"
)

// Auth holds the access and refresh tokens returned by the credential
// exchange. Expiry fields are millisecond epoch timestamps encoded as
// strings, mirroring the vendor's wire format; use the *ExpiresAt and
// *Expired helpers rather than reading them directly.
type Auth = api.Auth

// Authenticate performs the client-credentials exchange and caches the
// resulting token. Calling it while the cached token is still fresh
// returns the cache without a network round trip. Resource methods
// authenticate on demand, so calling this explicitly is optional.
func (c *Client) Authenticate(ctx context.Context) (*Auth, error) {
	return c.api.Authenticate(ctx)
}

// Auth returns the currently cached token, or nil when the client has
// not authenticated yet.
func (c *Client) Auth() *Auth {
	return c.api.Auth()
}
