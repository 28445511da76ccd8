// ABOUTME: Document version history endpoints.
// ABOUTME: Backed by S3 object versions, hence the marker-based paging.

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/harper/docs-mcp/internal/models"
)

// ListVersions returns a page of a document's version history. A
// non-empty versionID continues from that paging marker.
func (c *Client) ListVersions(ctx context.Context, documentID uuid.UUID, pageSize int, versionID string) (*models.VersionList, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	if versionID != "" {
		query.Set("version_id", versionID)
	}
	var list models.VersionList
	if err := c.doJSON(ctx, http.MethodGet, "documents/"+documentID.String()+"/versions/", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetVersion returns one historical version, content envelope included.
func (c *Client) GetVersion(ctx context.Context, documentID uuid.UUID, versionID string) (*models.Document, error) {
	var doc models.Document
	if err := c.doJSON(ctx, http.MethodGet, "documents/"+documentID.String()+"/versions/"+versionID+"/", nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteVersion removes one historical version.
func (c *Client) DeleteVersion(ctx context.Context, documentID uuid.UUID, versionID string) error {
	return c.doJSON(ctx, http.MethodDelete, "documents/"+documentID.String()+"/versions/"+versionID+"/", nil, nil, nil)
}
