// ABOUTME: HTTP client for the Docs REST API.
// ABOUTME: Token auth, retries, client-side rate limiting and status mapping.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/harper/docs-mcp/internal/cache"
	"github.com/harper/docs-mcp/internal/config"
)

// Client talks to a Docs instance. All methods take a context and are
// safe for concurrent use.
type Client struct {
	cfg     *config.Config
	http    *retryablehttp.Client
	limiter *rate.Limiter
	cache   *cache.Cache
	log     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCache attaches a document cache. Reads check it first and every
// write invalidates the touched document.
func WithCache(c *cache.Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithLogger replaces the default stderr logger.
func WithLogger(l *log.Logger) Option {
	return func(cl *Client) { cl.log = l }
}

// New builds a Client from the configuration.
func New(cfg *config.Config, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.MaxRetries
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = nil
	// Retry connection and timeout failures only. HTTP-level failures,
	// 429 included, surface to the caller through the error taxonomy.
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return err != nil, nil
	}

	cl := &Client{
		cfg:     cfg,
		http:    rc,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		log:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

// endpointURL joins the versioned API root with an endpoint path.
func (c *Client) endpointURL(endpoint string) string {
	return c.cfg.APIBaseURL() + "/" + strings.TrimLeft(endpoint, "/")
}

// do performs one API request and returns the raw response body. A 204
// yields a nil body and nil error.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.endpointURL(endpoint)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.cfg.APIToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("docs api request", "method", method, "url", u)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, endpoint, err)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	return nil, c.statusError(resp, data)
}

func (c *Client) statusError(resp *http.Response, body []byte) error {
	detail := errorDetail(body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: invalid or expired token", ErrAuth)
	case http.StatusForbidden:
		return ErrPermission
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &RateLimitError{RetryAfter: retryAfter}
	case http.StatusUnprocessableEntity:
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrValidation, detail)
		}
		return ErrValidation
	}
	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}

// errorDetail pulls the "detail" field out of a DRF error body, falling
// back to the raw text.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(body))
}

// doJSON performs a request and decodes the JSON response into out. With
// a nil out the body is discarded.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	data, err := c.do(ctx, method, endpoint, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, endpoint, err)
	}
	return nil
}

// decodeList accepts either a bare JSON array or a paginated object with
// a results field; the backend uses both shapes for sub-resources.
func decodeList[T any](data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}
	var page struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	return page.Results, nil
}
