// ABOUTME: Error taxonomy for the Docs REST API client.
// ABOUTME: Sentinels for the common failure classes plus a catch-all APIError.

package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes callers branch on.
var (
	ErrAuth        = errors.New("authentication failed")
	ErrPermission  = errors.New("permission denied")
	ErrNotFound    = errors.New("resource not found")
	ErrRateLimited = errors.New("rate limited")
	ErrValidation  = errors.New("validation error")
)

// APIError is any other non-2xx response from the Docs backend.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("docs api: HTTP %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("docs api: HTTP %d", e.StatusCode)
}

// RateLimitError carries the Retry-After hint when the backend throttles.
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }
