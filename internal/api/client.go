package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jansctl/pkg/logging"
	"jansctl/pkg/oauth"

	"github.com/google/uuid"
)

const (
	// BasePath is the configuration API mount point on the server.
	BasePath = "/jans-config-api/api/v1"

	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader correlates a request with server logs.
	RequestIDHeader = "X-Request-ID"

	maxErrorBodyBytes = 64 << 10
)

// Client calls the configuration API with a bearer token.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	userAgent  string
	requestID  func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRequestIDFunc replaces the X-Request-ID generator.
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) {
		c.requestID = fn
	}
}

// NewClient returns a client bound to the server base URL and bearer token.
// It performs no I/O.
func NewClient(server, token string, opts ...Option) (*Client, error) {
	if server == "" {
		return nil, fmt.Errorf("server URL is required")
	}
	u, err := url.Parse(strings.TrimSuffix(server, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", server, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", server)
	}

	c := &Client{
		baseURL:    u,
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  "jansctl",
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Server returns the base URL the client is bound to.
func (c *Client) Server() string {
	return c.baseURL.String()
}

// do sends one request and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := *c.baseURL
	u.Path = u.Path + BasePath + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := c.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	logging.Debug("API", "%s %s -> %d in %s (request %s)",
		method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), logging.TruncateID(requestID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp, method, path, requestID)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

// errorBody covers the error document shapes the server returns.
type errorBody struct {
	Message          string `json:"message"`
	Description      string `json:"description"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func newError(resp *http.Response, method, path, requestID string) *Error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Method:     method,
		Path:       path,
		RequestID:  requestID,
		Challenge:  oauth.ParseWWWAuthenticateFromResponse(resp),
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		for _, m := range []string{eb.Description, eb.Message, eb.ErrorDescription, eb.Error} {
			if m != "" {
				apiErr.Message = m
				break
			}
		}
	}
	if apiErr.Message == "" && apiErr.Challenge != nil && apiErr.Challenge.ErrorDescription != "" {
		apiErr.Message = apiErr.Challenge.ErrorDescription
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// page is the paginated list envelope.
type page[T any] struct {
	Entries []T `json:"entries"`
}

// listResult accepts either a paginated envelope or a bare array.
type listResult[T any] struct {
	items []T
}

func (l *listResult[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &l.items)
	}
	var p page[T]
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	l.items = p.Entries
	return nil
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Pattern != "" {
		v.Set("pattern", o.Pattern)
	}
	if o.Limit > 0 {
		v.Set("limit", fmt.Sprint(o.Limit))
	}
	if o.StartIndex > 0 {
		v.Set("startIndex", fmt.Sprint(o.StartIndex))
	}
	if o.Status != "" {
		v.Set("status", o.Status)
	}
	return v
}

func list[T any](ctx context.Context, c *Client, path string, opts ListOptions) ([]T, error) {
	var res listResult[T]
	if err := c.do(ctx, http.MethodGet, path, opts.values(), nil, &res); err != nil {
		return nil, err
	}
	if res.items == nil {
		return []T{}, nil
	}
	return res.items, nil
}
