// Package transport implements the authenticated JSON HTTP transport used by
// the kappaml client. It owns the underlying *http.Client and releases it
// exactly once on Close.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/kappaml/kappaml-go/pkg/constants"
	"github.com/kappaml/kappaml-go/pkg/errors"
	"github.com/kappaml/kappaml-go/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
// It is safe for concurrent use.
type Client struct {
	http    *http.Client
	auth    Authenticator
	apiKey  string
	baseURL string
	logger  *zerolog.Logger

	// shared is set when the *http.Client belongs to the caller.
	shared bool

	closed    atomic.Bool
	closeOnce sync.Once
}

// Option configures a transport Client.
type Option func(*Client)

// WithHTTPClient sends requests through a copy of the caller's *http.Client.
// Later options never modify hc, and Close leaves its connection pool alone.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			cp := *hc
			c.http = &cp
			c.shared = true
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request traces.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a new transport client for baseURL authenticating with apiKey.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		auth:    APIKeyAuth(),
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the endpoint requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins the base URL with escaped path segments.
func (c *Client) URL(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	Endpoint   string
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Decode unmarshals the JSON body into target.
func (r *Response) Decode(target any) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return errors.WrapParse("json", r.Endpoint, err)
	}
	return nil
}

// Do performs a request against path segments below the base URL. A non-nil
// body is sent as JSON. The response body is always read and closed before
// returning; the status code is left for the caller to interpret.
func (c *Client) Do(ctx context.Context, method string, body any, segments ...string) (*Response, error) {
	if c.Closed() {
		return nil, errors.ErrClientClosed
	}

	endpoint := c.URL(segments...)
	op := method + " " + endpoint

	var reader io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, errors.WrapParse("json", "request body", err)
		}
		reader = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.WrapAPI("build request", endpoint, err)
	}
	c.auth.Apply(req, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.Closed() {
			return nil, errors.ErrClientClosed
		}
		c.logger.Debug().Err(err).Str("request", op).Msg("Request failed")
		return nil, errors.WrapAPI("send request", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}

	c.logger.Debug().
		Str("request", op).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Request completed")

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
		Endpoint:   endpoint,
	}, nil
}

// Close releases pooled connections unless the *http.Client came from
// WithHTTPClient. Only the first call has any effect; afterwards every Do
// fails with errors.ErrClientClosed.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		if !c.shared {
			c.http.CloseIdleConnections()
		}
	})
	return nil
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	return c.closed.Load()
}
