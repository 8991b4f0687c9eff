package upgradechat

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/upgradechat/client-go/internal/api"
)

// Client is the Upgrade.Chat API client. All methods are safe for
// concurrent use; the only shared mutable state is the cached access
// token, which the transport guards internally.
type Client struct {
	api    *api.Client
	logger *zap.Logger
}

// New creates a new Upgrade.Chat client with the given credentials.
// No network call is made until the first API method is invoked.
func New(clientID, clientSecret string, opts ...Option) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:      cfg.baseURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		HTTPClient:   httpClient,
		MaxRetries:   cfg.maxRetries,
		Logger:       cfg.logger,
		Auth:         cfg.auth,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		api:    apiClient,
		logger: cfg.logger,
	}, nil
}
