package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/synapsehq/synapse-mcp/internal/auth"
)

// Client is the authenticated REST client for the Synapse backend. All
// requests carry the session's bearer token; transport failures are routed
// through a circuit breaker so a dead backend fails fast instead of stalling
// every poll tick.
type Client struct {
	baseURL string
	session auth.Session
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// Options tunes the client. Zero values get sensible defaults.
type Options struct {
	HTTPClient     *http.Client
	Logger         *slog.Logger
	BreakerTimeout time.Duration // open-state duration before a half-open probe
}

// New creates a client for the given backend base URL.
func New(baseURL string, session auth.Session, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	breakerTimeout := opts.BreakerTimeout
	if breakerTimeout <= 0 {
		breakerTimeout = 10 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "synapse-backend",
		Timeout: breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		session: session,
		http:    httpClient,
		breaker: breaker,
		logger:  logger,
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.session.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	// Only transport failures count against the breaker; a backend that
	// answers with an error status is reachable.
	result, err := c.breaker.Execute(func() (any, error) {
		return c.http.Do(req)
	})
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return &NetworkError{Err: err}
	}
	res := result.(*http.Response)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		err := classifyStatus(res.StatusCode, data)
		c.logger.Debug("request rejected", "method", method, "path", path, "status", res.StatusCode)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Entity: strings.TrimPrefix(path, "/"), Err: err}
	}
	return nil
}
