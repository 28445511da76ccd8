// ABOUTME: Backend AI endpoints and the server-side markdown converter.
// ABOUTME: Both AI calls are scoped to a document for permission checks.

package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/harper/docs-mcp/internal/models"
)

// AITransform asks the backend AI to rewrite text. Action is one of the
// models.AIAction constants.
func (c *Client) AITransform(ctx context.Context, documentID uuid.UUID, text, action string) (*models.AIResponse, error) {
	req := &models.AITransformRequest{Text: text, Action: action}
	var resp models.AIResponse
	if err := c.doJSON(ctx, http.MethodPost, "documents/"+documentID.String()+"/ai-transform/", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AITranslate asks the backend AI to translate text into language, an
// ISO code like "en" or "fr".
func (c *Client) AITranslate(ctx context.Context, documentID uuid.UUID, text, language string) (*models.AIResponse, error) {
	req := &models.AITranslateRequest{Text: text, Language: language}
	var resp models.AIResponse
	if err := c.doJSON(ctx, http.MethodPost, "documents/"+documentID.String()+"/ai-translate/", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConvertMarkdown runs the editor's own markdown importer server-side
// and returns the resulting content envelope. This is the authoritative
// converter; the local importer is only a fallback.
func (c *Client) ConvertMarkdown(ctx context.Context, markdown string) (string, error) {
	req := &models.ConvertRequest{Markdown: markdown}
	var resp models.ConvertResponse
	if err := c.doJSON(ctx, http.MethodPost, "convert/", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}
