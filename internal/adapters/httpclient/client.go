// Package httpclient implements the Registry port against a remote greet
// server, so the application is oblivious to whether the registry is
// local or remote.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/xvierd/greet-cli/internal/domain"
	"github.com/xvierd/greet-cli/internal/ports"
)

const (
	defaultTimeout  = 10 * time.Second
	cacheExpiration = 10 * time.Minute
	cacheCleanup    = 30 * time.Minute
)

// Client talks the registry protocol over HTTP/JSON. Identifiers are
// immutable once assigned, so resolved names are kept in a read-through
// cache.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	cache   *gocache.Cache
}

// Ensure Client implements ports.Registry.
var _ ports.Registry = (*Client)(nil)

// New creates a client for the registry server at baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		cache:   gocache.New(cacheExpiration, cacheCleanup),
	}, nil
}

// identifierResponse mirrors the server wire shape; nil means absent.
type identifierResponse struct {
	Identifier *string `json:"identifier"`
}

// Retrieve returns the identifier stored for name, or
// domain.ErrNameNotFound when the server reports absence.
func (c *Client) Retrieve(ctx context.Context, name string) (string, error) {
	if err := domain.ValidateName(name); err != nil {
		return "", err
	}

	if cached, found := c.cache.Get(name); found {
		return cached.(string), nil
	}

	body, err := c.roundTrip(ctx, http.MethodGet, c.identifierURL(name))
	if err != nil {
		return "", err
	}
	if body.Identifier == nil {
		return "", domain.ErrNameNotFound
	}

	c.cache.Set(name, *body.Identifier, gocache.DefaultExpiration)
	return *body.Identifier, nil
}

// Generate asks the server to run the read-or-create for name.
func (c *Client) Generate(ctx context.Context, name string) (string, error) {
	if err := domain.ValidateName(name); err != nil {
		return "", err
	}

	body, err := c.roundTrip(ctx, http.MethodPost, c.identifierURL(name))
	if err != nil {
		return "", err
	}
	if body.Identifier == nil {
		return "", fmt.Errorf("%w: server returned no identifier", domain.ErrRegistryUnavailable)
	}

	c.cache.Set(name, *body.Identifier, gocache.DefaultExpiration)
	return *body.Identifier, nil
}

// Names returns all registered names.
func (c *Client) Names(ctx context.Context) ([]string, error) {
	target := c.baseURL.JoinPath("api", "names").String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrRegistryUnavailable, resp.StatusCode)
	}

	var body struct {
		Names []string `json:"names"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrRegistryUnavailable, err)
	}
	return body.Names, nil
}

// identifierURL builds the endpoint for one name's identifier.
func (c *Client) identifierURL(name string) string {
	return c.baseURL.JoinPath("api", "names", name, "identifier").String()
}

// roundTrip performs one registry request and decodes the identifier
// envelope. Calls are synchronous and blocking; no retry policy exists.
func (c *Client) roundTrip(ctx context.Context, method, target string) (*identifierResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, domain.ErrInvalidName
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrRegistryUnavailable, resp.StatusCode)
	}

	var body identifierResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrRegistryUnavailable, err)
	}
	return &body, nil
}
