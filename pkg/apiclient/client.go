package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Auth endpoint paths, relative to the API base.
const (
	PathLogin    = "/auth/login"
	PathRegister = "/auth/register"
	PathLogout   = "/auth/logout"
	PathRefresh  = "/auth/refresh"
	PathCheck    = "/auth/check"
	PathCSRF     = "/auth/csrf"
)

// maxResponseBody caps buffered response bodies.
const maxResponseBody = 1024 * 1024

// Config holds API client configuration.
type Config struct {
	// BaseURL is the API origin plus path prefix, e.g. https://api.example.com/api/v1.
	BaseURL string `env:"API_ENDPOINT,required"`

	// RequestTimeout bounds a single request end to end.
	RequestTimeout time.Duration `env:"API_REQUEST_TIMEOUT" envDefault:"30s"`
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client entirely.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithTransport installs a transport (typically the request gate) on the
// client's default HTTP client.
func WithTransport(next http.RoundTripper) Option {
	return func(c *Client) {
		if next != nil {
			c.http.Transport = next
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// Client talks to the platform's auth API.
type Client struct {
	base *url.URL
	http *http.Client
	log  *slog.Logger
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, ErrInvalidBaseURL
	}

	c := &Client{
		base: base,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Login issues the credential exchange.
func (c *Client) Login(ctx context.Context, login, password string) (*Envelope, error) {
	payload := map[string]string{"login": login, "password": password}
	return c.do(ctx, http.MethodPost, PathLogin, payload)
}

// Register submits a registration request.
func (c *Client) Register(ctx context.Context, fields map[string]any) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, PathRegister, fields)
}

// Logout invalidates the session server-side. The refresh token header is
// attached by the gate.
func (c *Client) Logout(ctx context.Context) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, PathLogout, nil)
}

// Refresh exchanges the current access token for a fresh one.
func (c *Client) Refresh(ctx context.Context) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, PathRefresh, nil)
}

// Check probes whether the session is still valid server-side.
func (c *Client) Check(ctx context.Context) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, PathCheck, nil)
}

// CSRF fetches a CSRF token.
func (c *Client) CSRF(ctx context.Context) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, PathCSRF, nil)
}

// do issues a request and decodes the envelope. On a non-2xx status the
// decoded envelope is returned alongside ErrUnexpectedStatus so callers can
// still read the server's reason.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*Envelope, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Join(ErrEncodePayload, err)
		}
		body = bytes.NewReader(encoded)
	}

	target := *c.base
	target.Path = strings.TrimSuffix(target.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, err
	}

	envelope, decodeErr := decodeEnvelope(raw)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		statusErr := fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, path)
		if decodeErr != nil {
			return nil, statusErr
		}
		return envelope, statusErr
	}

	if decodeErr != nil {
		return nil, decodeErr
	}
	return envelope, nil
}

func decodeEnvelope(raw []byte) (*Envelope, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyResponse
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, errors.Join(ErrMalformedResponse, err)
	}
	return &envelope, nil
}
