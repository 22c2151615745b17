package cbd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// defaultEndpointTemplate is the public control-plane URL layout,
// parameterized by region and tenant.
const defaultEndpointTemplate = "https://%s.bigdata.api.rackspacecloud.com/v2/%s"

const userAgent = "cbdctl"

// RealClient implements PlatformManager against the HTTP control-plane API.
type RealClient struct {
	endpoint   string
	token      string
	userAgent  string
	httpClient *http.Client
}

// Ensure interface compliance.
var _ PlatformManager = (*RealClient)(nil)

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RealClient) {
		c.httpClient = hc
	}
}

// WithEndpoint overrides the region-derived endpoint with a full base URL,
// including the tenant path segment. Used for simulators and staging.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *RealClient) {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *RealClient) {
		c.userAgent = ua
	}
}

// NewRealClient creates a client scoped to one region and tenant. The
// token is sent verbatim on every request; acquiring one is the caller's
// job (see Authenticate).
func NewRealClient(region, tenantID, token string, opts ...ClientOption) *RealClient {
	c := &RealClient{
		endpoint:   fmt.Sprintf(defaultEndpointTemplate, strings.ToLower(region), tenantID),
		token:      token,
		userAgent:  userAgent,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the resolved base URL the client talks to.
func (c *RealClient) Endpoint() string {
	return c.endpoint
}

// do issues one API request and decodes the response envelope into out.
// Non-2xx responses are returned as an Error carrying the API's status
// code and message.
func (c *RealClient) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("X-Auth-Token", c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// decodeAPIError converts a non-2xx response into an Error. Responses
// without a structured error body fall back to the HTTP status text.
func decodeAPIError(resp *http.Response) error {
	var envelope struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
		return Error{Code: resp.StatusCode, Message: envelope.Error.Message}
	}
	return Error{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
}

// ListFlavors returns the provider's flavor catalog in provider order.
func (c *RealClient) ListFlavors(ctx context.Context) ([]Flavor, error) {
	var envelope struct {
		Flavors []Flavor `json:"flavors"`
	}
	if err := c.do(ctx, http.MethodGet, "/flavors", nil, &envelope); err != nil {
		return nil, fmt.Errorf("failed to list flavors: %w", err)
	}
	return envelope.Flavors, nil
}

// ListStacks returns the deployable stacks.
func (c *RealClient) ListStacks(ctx context.Context) ([]Stack, error) {
	var envelope struct {
		Stacks []Stack `json:"stacks"`
	}
	if err := c.do(ctx, http.MethodGet, "/stacks", nil, &envelope); err != nil {
		return nil, fmt.Errorf("failed to list stacks: %w", err)
	}
	return envelope.Stacks, nil
}

// GetStack fetches a stack by id.
func (c *RealClient) GetStack(ctx context.Context, id string) (*Stack, error) {
	var envelope struct {
		Stack Stack `json:"stack"`
	}
	if err := c.do(ctx, http.MethodGet, "/stacks/"+id, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Stack, nil
}

// CreateSSHKey registers a public key under the given name.
func (c *RealClient) CreateSSHKey(ctx context.Context, name, publicKey string) error {
	body := struct {
		Name      string `json:"name"`
		PublicKey string `json:"public_key"`
	}{Name: name, PublicKey: publicKey}
	return c.do(ctx, http.MethodPost, "/ssh_keys", body, nil)
}

// CreateCluster provisions a new cluster and returns its initial record.
func (c *RealClient) CreateCluster(ctx context.Context, opts CreateClusterOpts) (*Cluster, error) {
	var envelope struct {
		Cluster Cluster `json:"cluster"`
	}
	if err := c.do(ctx, http.MethodPost, "/clusters", opts, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Cluster, nil
}

// GetCluster fetches the current cluster record.
func (c *RealClient) GetCluster(ctx context.Context, id string) (*Cluster, error) {
	var envelope struct {
		Cluster Cluster `json:"cluster"`
	}
	if err := c.do(ctx, http.MethodGet, "/clusters/"+id, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Cluster, nil
}

// ListClusters returns all clusters visible to the tenant.
func (c *RealClient) ListClusters(ctx context.Context) ([]Cluster, error) {
	var envelope struct {
		Clusters []Cluster `json:"clusters"`
	}
	if err := c.do(ctx, http.MethodGet, "/clusters", nil, &envelope); err != nil {
		return nil, fmt.Errorf("failed to list clusters: %w", err)
	}
	return envelope.Clusters, nil
}

// DeleteCluster requests teardown of a cluster.
func (c *RealClient) DeleteCluster(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/clusters/"+id, nil, nil)
}

// Authenticate exchanges a username and API key for a short-lived token at
// the given auth endpoint. Rejected credentials surface as an auth-kind
// API error.
func Authenticate(ctx context.Context, httpClient *http.Client, authURL, username, apiKey string) (string, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	body, err := json.Marshal(struct {
		Username string `json:"username"`
		APIKey   string `json:"api_key"`
	}{Username: username, APIKey: apiKey})
	if err != nil {
		return "", fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, authURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call auth endpoint: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", decodeAPIError(resp)
	}

	var envelope struct {
		Token   string `json:"token"`
		Expires string `json:"expires,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("failed to decode auth response: %w", err)
	}
	if envelope.Token == "" {
		return "", Error{Code: resp.StatusCode, Message: "auth response carried no token"}
	}
	return envelope.Token, nil
}

// DefaultAuthURL returns the token endpoint for a region.
func DefaultAuthURL(region string) string {
	return fmt.Sprintf("https://%s.bigdata.api.rackspacecloud.com/v2/auth/token", strings.ToLower(region))
}
