package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/lernix/internal/store"
)

// TokenSource supplies the current session token, or the empty string
// when no user is logged in. Usually (*auth.Manager).Token.
type TokenSource func() string

// Client talks to the backend API. It owns request construction, bearer
// authorization, error translation, and payload validation; it holds no
// domain state of its own.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	events  store.EventRepo
}

// Option configures a Client.
type Option func(*Client)

// WithEventRepo records every API call in the local request log. Logging
// failures never fail the request.
func WithEventRepo(repo store.EventRepo) Option {
	return func(c *Client) { c.events = repo }
}

// WithHTTPClient overrides the underlying *http.Client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client. token may be nil for a client that only calls
// unauthenticated endpoints.
func New(cfg Config, token TokenSource, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		token:   token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do sends one request and decodes the success payload into out (unless
// out is nil). When auth is set, the request is pre-empted with an
// AuthRequiredError if no token is available — the backend's 401 is not
// the only guard.
func (c *Client) do(ctx context.Context, method, endpoint string, auth bool, body, out any) error {
	var bearer string
	if auth {
		if c.token != nil {
			bearer = c.token()
		}
		if bearer == "" {
			return &AuthRequiredError{Endpoint: endpoint}
		}
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Token "+bearer)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logEvent(endpoint, method, 0, start, err)
		return &APIError{Endpoint: endpoint, Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		c.logEvent(endpoint, method, resp.StatusCode, start, err)
		return &APIError{Endpoint: endpoint, Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(endpoint, resp.StatusCode, raw)
		c.logEvent(endpoint, method, resp.StatusCode, start, apiErr)
		return apiErr
	}

	c.logEvent(endpoint, method, resp.StatusCode, start, nil)

	if out == nil {
		return nil
	}
	if rawOut, ok := out.(*[]byte); ok {
		*rawOut = raw
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &PayloadError{Endpoint: endpoint, Content: raw, Err: err}
	}
	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, auth bool, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, auth, body, out)
}

func (c *Client) get(ctx context.Context, endpoint string, auth bool, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, auth, nil, out)
}

func (c *Client) patch(ctx context.Context, endpoint string, auth bool, body, out any) error {
	return c.do(ctx, http.MethodPatch, endpoint, auth, body, out)
}

// decodeError translates an error response body. The backend uses
// {"error": "..."} for most failures and {"field": ["msg", ...]} for
// registration/profile validation.
func decodeError(endpoint string, status int, raw []byte) error {
	var withMessage struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &withMessage); err == nil && withMessage.Error != "" {
		return &APIError{Endpoint: endpoint, Status: status, Message: withMessage.Error}
	}

	if status == http.StatusBadRequest {
		var fields map[string][]string
		if err := json.Unmarshal(raw, &fields); err == nil && len(fields) > 0 {
			return &ValidationError{Fields: fields}
		}
	}

	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return &APIError{Endpoint: endpoint, Status: status, Message: msg}
}

func (c *Client) logEvent(endpoint, method string, status int, start time.Time, reqErr error) {
	if c.events == nil {
		return
	}
	data := store.APIRequestEventData{
		Endpoint:  endpoint,
		Method:    method,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   reqErr == nil,
	}
	if reqErr != nil {
		data.Error = reqErr.Error()
	}
	// Best effort: the request outcome matters more than its log entry.
	_ = c.events.AppendAPIRequest(context.Background(), data)
}
