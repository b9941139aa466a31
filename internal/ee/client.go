package ee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"

	"github.com/openhydro/watermap-cli/internal/domain"
	"github.com/openhydro/watermap-cli/internal/logger"
)

const (
	defaultBaseURL = "https://earthengine.googleapis.com/v1"

	// publicProject hosts the Earth Engine public data catalog.
	publicProject = "projects/earthengine-public"
)

// DefaultScopes are the OAuth scopes required to query assets and export
// to Drive.
var DefaultScopes = []string{
	"https://www.googleapis.com/auth/earthengine",
	"https://www.googleapis.com/auth/devstorage.full_control",
	"https://www.googleapis.com/auth/drive.file",
}

// Client is an authenticated Earth Engine REST API client bound to a
// Cloud project.
type Client struct {
	httpClient *http.Client
	baseURL    string
	project    string
	limiter    *RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Useful for testing.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient supplies a pre-authenticated HTTP client, bypassing
// Application Default Credentials resolution.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit overrides the default client-side rate limit.
func WithRateLimit(cfg RateLimitConfig) Option {
	return func(c *Client) { c.limiter = NewRateLimiter(cfg) }
}

// NewClient creates an Earth Engine client for the given Cloud project.
// Credentials come from Application Default Credentials unless an HTTP
// client is supplied.
func NewClient(ctx context.Context, project string, opts ...Option) (*Client, error) {
	if project == "" {
		return nil, fmt.Errorf("%w: project is required", domain.ErrInvalidInput)
	}

	c := &Client{
		baseURL: defaultBaseURL,
		project: project,
		limiter: NewRateLimiter(DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		ts, err := google.DefaultTokenSource(ctx, DefaultScopes...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrNoCredentials, err)
		}
		c.httpClient = oauth2.NewClient(ctx, ts)
	}

	return c, nil
}

// PublicAsset returns the full resource name of a public catalog asset,
// e.g. PublicAsset("USGS/WBD/2017/HUC10").
func PublicAsset(id string) string {
	return publicProject + "/assets/" + id
}

// projectPath returns the resource prefix for the bound project.
func (c *Client) projectPath() string {
	return "projects/" + c.project
}

// do performs one API request. Errors from the service are surfaced
// as-is after sentinel mapping; there is no retry.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	u := c.baseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debugf("earthengine: %s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("earthengine request: %w", err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		wrapped := WrapError(err)
		if IsRateLimited(wrapped) {
			c.limiter.RecordRateLimitError(0)
		}
		return wrapped
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
