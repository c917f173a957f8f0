// Package scenes provides a client for the TerraLens imagery-search API.
package scenes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/terralens/terralens/internal/creds"
)

const (
	// BaseURL is the TerraLens API base URL.
	BaseURL = "https://api.terralens.io/v0"

	// EnvAPIKey is the environment variable consulted for the API key.
	EnvAPIKey = "TL_API_KEY"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// RateLimit is 10 requests per second per TerraLens documentation.
	RateLimit = 10.0

	// DefaultSceneType is the catalog searched when none is given.
	DefaultSceneType = "ortho"

	// DefaultWorkers is the default download concurrency.
	DefaultWorkers = 4

	// DefaultSearchCount is the default page size for scene searches.
	DefaultSearchCount = 50
)

// API is the remote-client contract the CLI dispatches against.
// Commands depend on this interface so tests can substitute a fake.
type API interface {
	GetScenesList(ctx context.Context, sceneType string, opts SearchOptions) (*Response, error)
	GetSceneMetadata(ctx context.Context, id, sceneType string) (*Response, error)
	SetWorkspace(ctx context.Context, workspace map[string]any, id string) (*Response, error)
	Login(ctx context.Context, email, password string) (*Response, error)
	Download(ctx context.Context, req DownloadRequest) error
}

// SearchOptions narrows a scene search.
type SearchOptions struct {
	Intersects string // GeoJSON geometry the scenes must intersect
	Count      int    // maximum results, 0 for the service default
}

// Body holds the raw payload of a service response.
type Body struct {
	raw []byte
}

// GetRaw returns the payload as text.
func (b *Body) GetRaw() string { return string(b.raw) }

// Response is the result of a remote operation.
type Response struct {
	body *Body
}

// GetBody returns the response body.
func (r *Response) GetBody() *Body { return r.body }

// NewResponse builds a response around a raw payload. Exported for
// fakes standing in for the client in tests.
func NewResponse(raw string) *Response {
	return &Response{body: &Body{raw: []byte(raw)}}
}

// Client is a rate-limited HTTP client for the TerraLens API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	workers    int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithWorkers sets the download concurrency.
func WithWorkers(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.workers = n
		}
	}
}

// NewClient creates a new TerraLens API client. The API key is taken
// from options, falling back to TL_API_KEY and then the stored
// credentials file.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		workers:    DefaultWorkers,
	}

	if key := os.Getenv(EnvAPIKey); key != "" {
		c.apiKey = key
	}
	if c.apiKey == "" {
		if key, err := creds.Load(); err == nil {
			c.apiKey = key
		}
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// request issues a single HTTP request and maps the response to a
// domain result. Every operation except login requires an API key.
func (c *Client) request(ctx context.Context, method, path string, params url.Values, payload []byte, needKey bool) (*Response, error) {
	if needKey && c.apiKey == "" {
		return nil, &InvalidAPIKey{Message: "No API key provided"}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + "/" + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrNetworkError, err)
	}

	if err := checkResponse(resp.StatusCode, data); err != nil {
		return nil, err
	}

	return &Response{body: &Body{raw: data}}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.request(ctx, http.MethodGet, path, params, nil, true)
}

// GetScenesList searches the given scene catalog.
func (c *Client) GetScenesList(ctx context.Context, sceneType string, opts SearchOptions) (*Response, error) {
	if sceneType == "" {
		sceneType = DefaultSceneType
	}

	params := url.Values{}
	if opts.Intersects != "" {
		params.Set("intersects", opts.Intersects)
	}
	if opts.Count > 0 {
		params.Set("count", strconv.Itoa(opts.Count))
	}

	return c.get(ctx, "scenes/"+sceneType+"/", params)
}

// GetSceneMetadata fetches the metadata record for a scene.
func (c *Client) GetSceneMetadata(ctx context.Context, id, sceneType string) (*Response, error) {
	if sceneType == "" {
		sceneType = DefaultSceneType
	}
	return c.get(ctx, "scenes/"+sceneType+"/"+id, nil)
}

// SetWorkspace creates or updates a saved search workspace. With an
// empty id a new workspace is created; otherwise the workspace with
// that id is replaced.
func (c *Client) SetWorkspace(ctx context.Context, workspace map[string]any, id string) (*Response, error) {
	payload, err := json.Marshal(workspace)
	if err != nil {
		return nil, fmt.Errorf("encoding workspace: %w", err)
	}

	if id == "" {
		return c.request(ctx, http.MethodPost, "workspaces/", nil, payload, true)
	}
	return c.request(ctx, http.MethodPut, "workspaces/"+id, nil, payload, true)
}

// Login exchanges credentials for an API key. The response payload
// carries the key under "api_key".
func (c *Client) Login(ctx context.Context, email, password string) (*Response, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding login request: %w", err)
	}

	// Login is the one unauthenticated operation; it exists to obtain
	// the key in the first place.
	return c.request(ctx, http.MethodPost, "auth/login", nil, payload, false)
}
