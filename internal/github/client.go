// Package github is a client for the issues, labels and comments endpoints of a
// GitHub-compatible REST API, scoped to a single repository owner.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

const (
	defaultUserAgent = "issuectl"
	mediaTypeJSON    = "application/json"
	mediaTypeGitHub  = "application/vnd.github+json"
	apiVersionHeader = "X-GitHub-Api-Version"
	apiVersion       = "2022-11-28"
)

// Client issues authenticated requests against a base URL such as
// https://api.github.com/repos/<owner>/. It holds no mutable state and is
// safe for concurrent use.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// Option configures a Client at construction time
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. Its transport is wrapped, not replaced.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			copied := *hc
			c.http = &copied
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with every request
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client that authenticates every request with HTTP Basic
// authentication built from username and token
func NewClient(baseURL, username, token string, opts ...Option) *Client {
	c := newClient(baseURL, opts)
	c.http.Transport = &basicAuthTransport{
		username: username,
		password: token,
		base:     c.http.Transport,
	}
	return c
}

// NewTokenClient creates a client that authenticates every request with a bearer
// token taken from ts
func NewTokenClient(baseURL string, ts oauth2.TokenSource, opts ...Option) *Client {
	c := newClient(baseURL, opts)
	c.http.Transport = &oauth2.Transport{
		Source: oauth2.ReuseTokenSource(nil, ts),
		Base:   c.http.Transport,
	}
	return c
}

func newClient(baseURL string, opts []Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// basicAuthTransport sets the Authorization header on every outgoing request
type basicAuthTransport struct {
	username string
	password string
	base     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	r := req.Clone(req.Context())
	r.SetBasicAuth(t.username, t.password)
	return t.transport().RoundTrip(r)
}

func (t *basicAuthTransport) transport() http.RoundTripper {
	if t.base != nil {
		return t.base
	}
	return http.DefaultTransport
}

// joinPath appends escaped path segments to base, inserting a separator when base lacks one
func joinPath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	if !strings.HasSuffix(base, "/") {
		b.WriteByte('/')
	}
	for i, segment := range segments {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(url.PathEscape(segment))
	}
	return b.String()
}

// newRequest builds a request for the resource at segments below the base URL.
// A non-nil body is JSON encoded.
func (c *Client) newRequest(ctx context.Context, method string, body any, segments ...string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, joinPath(c.baseURL, segments...), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", mediaTypeJSON)
	}
	req.Header.Set("Accept", mediaTypeGitHub)
	req.Header.Set(apiVersionHeader, apiVersion)
	req.Header.Set("User-Agent", c.userAgent)

	return req, nil
}

// response is a fully read HTTP response
type response struct {
	req    *http.Request
	status int
	body   []byte
}

// decode unmarshals the body into v, reporting failures as deserialization errors
func (r *response) decode(v any) error {
	trimmed := bytes.TrimSpace(r.body)
	if len(trimmed) == 0 {
		return r.malformed(fmt.Errorf("empty response body"))
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return r.malformed(fmt.Errorf("response body is null"))
	}
	if err := json.Unmarshal(r.body, v); err != nil {
		return r.malformed(err)
	}
	return nil
}

func (r *response) malformed(err error) error {
	return deserializationError(r.req, r.status, r.body, err)
}

// do sends req and reads the whole response. Non-2xx statuses are returned as *Error.
func (c *Client) do(req *http.Request) (*response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(req, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(req, fmt.Errorf("failed to read response body: %w", err))
	}

	if err := checkResponse(req, resp.StatusCode, body); err != nil {
		return nil, err
	}

	return &response{req: req, status: resp.StatusCode, body: body}, nil
}

// call builds, sends and decodes a request in one step. out may be nil.
func (c *Client) call(ctx context.Context, method string, in, out any, segments ...string) (*response, error) {
	req, err := c.newRequest(ctx, method, in, segments...)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if out != nil {
		if err := resp.decode(out); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
