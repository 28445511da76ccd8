// ABOUTME: Tests for the HTTP client core: auth, status mapping, decoding.
// ABOUTME: Uses httptest servers standing in for a Docs instance.

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harper/docs-mcp/internal/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		BaseURL:    baseURL,
		APIToken:   "test-token-1234",
		APIVersion: "v1.0",
		Timeout:    5 * time.Second,
		MaxRetries: 0,
		RateLimit:  1000,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(testConfig(srv.URL))
}

func TestRequestCarriesTokenAuth(t *testing.T) {
	var gotAuth, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	})

	if _, err := client.GetCurrentUser(context.Background()); err != nil {
		t.Fatalf("GetCurrentUser: %v", err)
	}
	if gotAuth != "Token test-token-1234" {
		t.Errorf("Authorization: got %q", gotAuth)
	}
	if gotPath != "/api/v1.0/users/me/" {
		t.Errorf("path: got %q", gotPath)
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrAuth},
		{http.StatusForbidden, ErrPermission},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusUnprocessableEntity, ErrValidation},
	}

	for _, tc := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})
		_, err := client.GetCurrentUser(context.Background())
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: got %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestRateLimitRetryAfter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "42")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.GetCurrentUser(context.Background())
	var rle *RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("got %v, want RateLimitError", err)
	}
	if rle.RetryAfter != 42 {
		t.Errorf("RetryAfter: got %d, want 42", rle.RetryAfter)
	}
}

func TestAPIErrorCarriesDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail": "document is locked"}`))
	})

	_, err := client.GetCurrentUser(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusConflict || apiErr.Detail != "document is locked" {
		t.Errorf("got %+v", apiErr)
	}
}

func TestNoContentIsSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	data, err := client.do(context.Background(), http.MethodDelete, "documents/x/", nil, nil)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil body, got %q", data)
	}
}

func TestDecodeListShapes(t *testing.T) {
	type row struct {
		Name string `json:"name"`
	}

	bare, err := decodeList[row]([]byte(`[{"name":"a"},{"name":"b"}]`))
	if err != nil || len(bare) != 2 {
		t.Fatalf("bare list: %v %v", bare, err)
	}

	paged, err := decodeList[row]([]byte(`{"count":1,"results":[{"name":"c"}]}`))
	if err != nil || len(paged) != 1 || paged[0].Name != "c" {
		t.Fatalf("paged list: %v %v", paged, err)
	}

	if _, err := decodeList[row]([]byte(`"nope"`)); err == nil {
		t.Error("expected error for non-list payload")
	}
}
