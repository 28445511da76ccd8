// ABOUTME: User lookup endpoints.
// ABOUTME: Search is used to resolve emails before granting access.

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/harper/docs-mcp/internal/models"
)

// SearchUsers finds users by email or name. When documentID is set the
// backend excludes users who already have access to that document.
func (c *Client) SearchUsers(ctx context.Context, query string, documentID *uuid.UUID) ([]models.User, error) {
	q := url.Values{}
	q.Set("q", query)
	if documentID != nil {
		q.Set("document_id", documentID.String())
	}
	data, err := c.do(ctx, http.MethodGet, "users/", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.User](data)
}

// GetCurrentUser returns the account the API token belongs to.
func (c *Client) GetCurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "users/me/", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
