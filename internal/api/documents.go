// ABOUTME: Document CRUD, tree, favorites, trashbin and sharing endpoints.
// ABOUTME: Reads go through the cache when one is attached; writes invalidate.

package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/harper/docs-mcp/internal/cache"
	"github.com/harper/docs-mcp/internal/models"
)

// ListDocuments returns documents visible to the current user.
func (c *Client) ListDocuments(ctx context.Context, filters *models.ListFilters) (*models.DocumentList, error) {
	query := url.Values{}
	if filters != nil {
		if filters.IsCreatorMe != nil {
			query.Set("is_creator_me", strconv.FormatBool(*filters.IsCreatorMe))
		}
		if filters.IsFavorite != nil {
			query.Set("is_favorite", strconv.FormatBool(*filters.IsFavorite))
		}
		if filters.Title != "" {
			query.Set("title", filters.Title)
		}
		if filters.Ordering != "" {
			query.Set("ordering", filters.Ordering)
		}
		if filters.Page > 0 {
			query.Set("page", strconv.Itoa(filters.Page))
		}
		if filters.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(filters.PageSize))
		}
	}
	var list models.DocumentList
	if err := c.doJSON(ctx, http.MethodGet, "documents/", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetDocument fetches one document including its content envelope.
func (c *Client) GetDocument(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	if c.cache != nil {
		doc, err := c.cache.GetDocument(id)
		if err == nil {
			c.log.Debug("cache hit", "document", id)
			return doc, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			c.log.Warn("cache read failed", "document", id, "err", err)
		}
	}

	var doc models.Document
	if err := c.doJSON(ctx, http.MethodGet, "documents/"+id.String()+"/", nil, nil, &doc); err != nil {
		return nil, err
	}
	if c.cache != nil {
		if err := c.cache.PutDocument(&doc); err != nil {
			c.log.Warn("cache write failed", "document", id, "err", err)
		}
	}
	return &doc, nil
}

// CreateDocument creates a document, as a child of parentID when set.
func (c *Client) CreateDocument(ctx context.Context, req *models.CreateDocumentRequest, parentID *uuid.UUID) (*models.Document, error) {
	endpoint := "documents/"
	if parentID != nil {
		endpoint = "documents/" + parentID.String() + "/children/"
	}
	var doc models.Document
	if err := c.doJSON(ctx, http.MethodPost, endpoint, nil, req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDocument patches title and/or content.
func (c *Client) UpdateDocument(ctx context.Context, id uuid.UUID, req *models.UpdateDocumentRequest) (*models.Document, error) {
	var doc models.Document
	if err := c.doJSON(ctx, http.MethodPatch, "documents/"+id.String()+"/", nil, req, &doc); err != nil {
		return nil, err
	}
	c.invalidate(id)
	return &doc, nil
}

// DeleteDocument soft-deletes a document into the trashbin.
func (c *Client) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	if err := c.doJSON(ctx, http.MethodDelete, "documents/"+id.String()+"/", nil, nil, nil); err != nil {
		return err
	}
	c.invalidate(id)
	return nil
}

// RestoreDocument brings a document back from the trashbin.
func (c *Client) RestoreDocument(ctx context.Context, id uuid.UUID) error {
	return c.doJSON(ctx, http.MethodPost, "documents/"+id.String()+"/restore/", nil, nil, nil)
}

// MoveDocument repositions a document relative to a target.
func (c *Client) MoveDocument(ctx context.Context, id uuid.UUID, req *models.MoveDocumentRequest) error {
	return c.doJSON(ctx, http.MethodPost, "documents/"+id.String()+"/move/", nil, req, nil)
}

// DuplicateDocument copies a document, optionally carrying its accesses.
func (c *Client) DuplicateDocument(ctx context.Context, id uuid.UUID, withAccesses bool) (*models.Document, error) {
	req := &models.DuplicateDocumentRequest{WithAccesses: withAccesses}
	var doc models.Document
	if err := c.doJSON(ctx, http.MethodPost, "documents/"+id.String()+"/duplicate/", nil, req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetChildren returns the direct children of a document.
func (c *Client) GetChildren(ctx context.Context, id uuid.UUID) ([]models.ListDocument, error) {
	data, err := c.do(ctx, http.MethodGet, "documents/"+id.String()+"/children/", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.ListDocument](data)
}

// GetDescendants returns all documents below a document.
func (c *Client) GetDescendants(ctx context.Context, id uuid.UUID) ([]models.ListDocument, error) {
	data, err := c.do(ctx, http.MethodGet, "documents/"+id.String()+"/descendants/", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.ListDocument](data)
}

// GetTree returns the full tree the document belongs to.
func (c *Client) GetTree(ctx context.Context, id uuid.UUID) ([]models.ListDocument, error) {
	data, err := c.do(ctx, http.MethodGet, "documents/"+id.String()+"/tree/", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.ListDocument](data)
}

// CanEdit reports whether direct content edits are currently safe. The
// backend refuses when live collaboration sessions hold the document.
func (c *Client) CanEdit(ctx context.Context, id uuid.UUID) (bool, error) {
	var resp struct {
		CanEdit bool `json:"can_edit"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "documents/"+id.String()+"/can-edit/", nil, nil, &resp); err != nil {
		return false, err
	}
	return resp.CanEdit, nil
}

// MaskDocument hides a document from the user's own lists.
func (c *Client) MaskDocument(ctx context.Context, id uuid.UUID) error {
	return c.doJSON(ctx, http.MethodPost, "documents/"+id.String()+"/mask/", nil, nil, nil)
}

// UnmaskDocument undoes MaskDocument.
func (c *Client) UnmaskDocument(ctx context.Context, id uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, "documents/"+id.String()+"/mask/", nil, nil, nil)
}

// UpdateLinkConfiguration changes a document's share link reach and role.
func (c *Client) UpdateLinkConfiguration(ctx context.Context, id uuid.UUID, req *models.LinkConfigurationRequest) (*models.Document, error) {
	var doc models.Document
	if err := c.doJSON(ctx, http.MethodPut, "documents/"+id.String()+"/link-configuration/", nil, req, &doc); err != nil {
		return nil, err
	}
	c.invalidate(id)
	return &doc, nil
}

// AddFavorite marks a document as favorite for the current user.
func (c *Client) AddFavorite(ctx context.Context, id uuid.UUID) error {
	return c.doJSON(ctx, http.MethodPost, "documents/"+id.String()+"/favorite/", nil, nil, nil)
}

// RemoveFavorite unmarks a favorite.
func (c *Client) RemoveFavorite(ctx context.Context, id uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, "documents/"+id.String()+"/favorite/", nil, nil, nil)
}

// ListFavorites returns the current user's favorite documents.
func (c *Client) ListFavorites(ctx context.Context) (*models.DocumentList, error) {
	var list models.DocumentList
	if err := c.doJSON(ctx, http.MethodGet, "documents/favorite_list/", nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListTrashbin returns soft-deleted documents still restorable.
func (c *Client) ListTrashbin(ctx context.Context) (*models.DocumentList, error) {
	var list models.DocumentList
	if err := c.doJSON(ctx, http.MethodGet, "documents/trashbin/", nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ServerConfig returns the backend's public configuration flags.
func (c *Client) ServerConfig(ctx context.Context) (map[string]any, error) {
	var cfg map[string]any
	if err := c.doJSON(ctx, http.MethodGet, "config/", nil, nil, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Client) invalidate(id uuid.UUID) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Invalidate(id); err != nil {
		c.log.Warn("cache invalidation failed", "document", id, "err", err)
	}
}
