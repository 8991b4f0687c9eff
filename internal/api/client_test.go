package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/upgradechat/client-go/internal/apierrors"
)

func freshAuthJSON(token string) string {
	expiry := time.Now().Add(time.Hour).UnixMilli()
	return fmt.Sprintf(`{"access_token":%q,"access_token_expires_in":"%d","token_type":"Bearer"}`, token, expiry)
}

func newTestTransport(t *testing.T, handler http.Handler, cfg Config) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.BaseURL = srv.URL
	if cfg.ClientID == "" {
		cfg.ClientID = "id"
	}
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = "secret"
	}

	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		secret string
	}{
		{"missing both", "", ""},
		{"missing secret", "id", ""},
		{"missing id", "", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(Config{ClientID: tt.id, ClientSecret: tt.secret})
			if !errors.Is(err, apierrors.ErrMissingCredentials) {
				t.Errorf("NewClient() error = %v, want ErrMissingCredentials", err)
			}
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(Config{ClientID: "id", ClientSecret: "secret"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
	if c.maxRetries != DefaultMaxRetries {
		t.Errorf("maxRetries = %d, want %d", c.maxRetries, DefaultMaxRetries)
	}
	if c.httpClient == nil || c.httpClient.Timeout != DefaultTimeout {
		t.Errorf("httpClient timeout not defaulted to %v", DefaultTimeout)
	}
	if c.logger == nil {
		t.Error("logger not defaulted")
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c, err := NewClient(Config{
		ClientID:     "id",
		ClientSecret: "secret",
		BaseURL:      "https://example.test/",
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if c.baseURL != "https://example.test" {
		t.Errorf("baseURL = %q, want trailing slash removed", c.baseURL)
	}
}

func TestDo_SendsFormBodyAndHeaders(t *testing.T) {
	var got struct {
		contentType string
		accept      string
		body        url.Values
	}

	mux := http.NewServeMux()
	mux.HandleFunc(AuthTokenPath, func(w http.ResponseWriter, r *http.Request) {
		got.contentType = r.Header.Get("Content-Type")
		got.accept = r.Header.Get("Accept")
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error = %v", err)
		}
		got.body = r.PostForm
		fmt.Fprint(w, freshAuthJSON("tok"))
	})

	c := newTestTransport(t, mux, Config{ClientID: "my-id", ClientSecret: "my-secret"})

	if _, err := c.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	if got.contentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", got.contentType)
	}
	if got.accept != "application/json" {
		t.Errorf("Accept = %q", got.accept)
	}
	if got.body.Get("client_id") != "my-id" || got.body.Get("client_secret") != "my-secret" {
		t.Errorf("credentials not encoded in form body: %v", got.body)
	}
	if got.body.Get("grant_type") != "client_credentials" {
		t.Errorf("grant_type = %q", got.body.Get("grant_type"))
	}
}

func TestDo_AttachesBearerToken(t *testing.T) {
	var authHeader string

	mux := http.NewServeMux()
	mux.HandleFunc(AuthTokenPath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, freshAuthJSON("abc123"))
	})
	mux.HandleFunc("/v1/widgets", func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		fmt.Fprint(w, `{}`)
	})

	c := newTestTransport(t, mux, Config{})

	if err := c.Do(context.Background(), http.MethodGet, "/v1/widgets", nil, nil, nil); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if authHeader != "Bearer abc123" {
		t.Errorf("Authorization = %q, want Bearer abc123", authHeader)
	}
}

func TestDo_EncodesQueryParameters(t *testing.T) {
	var gotQuery url.Values

	mux := http.NewServeMux()
	mux.HandleFunc(AuthTokenPath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, freshAuthJSON("tok"))
	})
	mux.HandleFunc("/v1/widgets", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{}`)
	})

	c := newTestTransport(t, mux, Config{})

	q := url.Values{}
	q.Set("limit", "25")
	q.Set("offset", "50")
	if err := c.Do(context.Background(), http.MethodGet, "/v1/widgets", q, nil, nil); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if gotQuery.Get("limit") != "25" || gotQuery.Get("offset") != "50" {
		t.Errorf("query = %v", gotQuery)
	}
}

func TestDo_NetworkErrorNotRetried(t *testing.T) {
	var calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc(AuthTokenPath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, freshAuthJSON("tok"))
	})

	c := newTestTransport(t, mux, Config{})

	// Swap in a transport that fails every resource request.
	c.SetHTTPClient(&http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Path == AuthTokenPath {
				return http.DefaultTransport.RoundTrip(r)
			}
			calls.Add(1)
			return nil, errors.New("connection refused")
		}),
	})

	err := c.Do(context.Background(), http.MethodGet, "/v1/widgets", nil, nil, nil)

	var netErr *apierrors.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Do() error = %v, want *NetworkError", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("transport attempts = %d, want 1 (no retry on network failure)", n)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"absent", "", 60},
		{"valid", "15", 15},
		{"zero", "0", 0},
		{"malformed", "soon", 60},
		{"negative", "-3", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{Header: http.Header{}}
			if tt.header != "" {
				resp.Header.Set("Retry-After", tt.header)
			}
			if got := retryAfterSeconds(resp); got != tt.want {
				t.Errorf("retryAfterSeconds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBodyMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"gone"}`, "gone"},
		{"error field", `{"error":"nope"}`, "nope"},
		{"message wins over error", `{"message":"gone","error":"nope"}`, "gone"},
		{"raw body", `plain text`, "plain text"},
		{"empty body", ``, "fallback"},
		{"whitespace body", "  \n ", "fallback"},
		{"empty json", `{}`, "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bodyMessage([]byte(tt.body), "fallback"); got != tt.want {
				t.Errorf("bodyMessage(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestToken_SingleFlightUnderConcurrency(t *testing.T) {
	var exchanges atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc(AuthTokenPath, func(w http.ResponseWriter, r *http.Request) {
		exchanges.Add(1)
		time.Sleep(50 * time.Millisecond)
		fmt.Fprint(w, freshAuthJSON("shared"))
	})

	c := newTestTransport(t, mux, Config{})

	const callers = 10
	var wg sync.WaitGroup
	tokens := make([]string, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = c.Token(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("Token() caller %d error = %v", i, errs[i])
		}
		if tokens[i] != "shared" {
			t.Errorf("Token() caller %d = %q, want %q", i, tokens[i], "shared")
		}
	}
	if n := exchanges.Load(); n != 1 {
		t.Errorf("credential exchanges = %d, want 1", n)
	}
}

func TestAuthenticate_RefreshesOnlyWhenExpired(t *testing.T) {
	var exchanges atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc(AuthTokenPath, func(w http.ResponseWriter, r *http.Request) {
		n := exchanges.Add(1)
		fmt.Fprint(w, freshAuthJSON(fmt.Sprintf("tok-%d", n)))
	})

	c := newTestTransport(t, mux, Config{})

	first, err := c.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	second, err := c.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	if first.AccessToken != "tok-1" || second.AccessToken != "tok-1" {
		t.Errorf("tokens = %q, %q; want cached tok-1 both times", first.AccessToken, second.AccessToken)
	}
	if n := exchanges.Load(); n != 1 {
		t.Errorf("credential exchanges = %d, want 1", n)
	}

	c.InvalidateToken()
	third, err := c.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if third.AccessToken != "tok-2" {
		t.Errorf("token after invalidation = %q, want tok-2", third.AccessToken)
	}
}
