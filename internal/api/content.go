// ABOUTME: Content-level operations bridging the REST API and the CRDT codec.
// ABOUTME: Text extraction, text/markdown writes and AI round-trips.

package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/harper/docs-mcp/internal/blocknote"
	"github.com/harper/docs-mcp/internal/models"
	"github.com/harper/docs-mcp/internal/yjs"
)

// Content formats accepted by UpdateContent.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// ConversionSource reports which converter produced a markdown write.
type ConversionSource string

const (
	// ConversionRemote means the backend /convert/ endpoint was used.
	ConversionRemote ConversionSource = "remote"
	// ConversionLocal means the built-in markdown importer was used.
	ConversionLocal ConversionSource = "local"
	// ConversionNone means no markdown conversion was involved.
	ConversionNone ConversionSource = "none"
)

// ContentText fetches a document and extracts its plain text. An empty
// content envelope yields an empty string.
func (c *Client) ContentText(ctx context.Context, id uuid.UUID) (string, error) {
	doc, err := c.GetDocument(ctx, id)
	if err != nil {
		return "", err
	}
	return extractEnvelopeText(doc.Content)
}

// VersionText extracts the plain text of a historical version.
func (c *Client) VersionText(ctx context.Context, documentID uuid.UUID, versionID string) (string, error) {
	doc, err := c.GetVersion(ctx, documentID, versionID)
	if err != nil {
		return "", err
	}
	return extractEnvelopeText(doc.Content)
}

func extractEnvelopeText(envelope string) (string, error) {
	if envelope == "" {
		return "", nil
	}
	update, err := yjs.DecodeEnvelope(envelope)
	if err != nil {
		return "", err
	}
	replica, err := yjs.Load(update)
	if err != nil {
		return "", err
	}
	return blocknote.ExtractText(replica.Root(yjs.StoreKey)), nil
}

// UpdateContent replaces a document's content with text or markdown.
// Markdown goes through the backend converter when reachable, falling
// back to the local importer; the returned ConversionSource says which.
func (c *Client) UpdateContent(ctx context.Context, id uuid.UUID, content, format string) (*models.Document, ConversionSource, error) {
	envelope, source, err := c.encodeContent(ctx, content, format)
	if err != nil {
		return nil, source, err
	}
	doc, err := c.UpdateDocument(ctx, id, &models.UpdateDocumentRequest{
		Content:   envelope,
		Websocket: true,
	})
	if err != nil {
		return nil, source, err
	}
	return doc, source, nil
}

// CreateDocumentWithText creates a document whose initial content is the
// given text or markdown.
func (c *Client) CreateDocumentWithText(ctx context.Context, title, content, format string, parentID *uuid.UUID) (*models.Document, ConversionSource, error) {
	source := ConversionNone
	req := &models.CreateDocumentRequest{Title: title}
	if content != "" {
		envelope, src, err := c.encodeContent(ctx, content, format)
		if err != nil {
			return nil, src, err
		}
		req.Content = envelope
		source = src
	}
	doc, err := c.CreateDocument(ctx, req, parentID)
	if err != nil {
		return nil, source, err
	}
	return doc, source, nil
}

func (c *Client) encodeContent(ctx context.Context, content, format string) (string, ConversionSource, error) {
	switch format {
	case FormatText, "":
		envelope, err := encodeBlocks(blocknote.FromPlainText(content))
		return envelope, ConversionNone, err
	case FormatMarkdown:
		envelope, err := c.ConvertMarkdown(ctx, content)
		if err == nil {
			return envelope, ConversionRemote, nil
		}
		c.log.Warn("server-side markdown conversion failed, using local importer", "err", err)
		envelope, err = encodeBlocks(blocknote.FromMarkdown(content))
		return envelope, ConversionLocal, err
	}
	return "", ConversionNone, fmt.Errorf("invalid format %q: must be %q or %q", format, FormatText, FormatMarkdown)
}

func encodeBlocks(blocks []blocknote.LogicalBlock) (string, error) {
	replica, err := blocknote.NewMapper().Replica(blocks)
	if err != nil {
		return "", err
	}
	return yjs.EncodeEnvelope(replica.Snapshot()), nil
}

// ApplyAITransformToContent runs an AI action over text and writes the
// answer back as the document content. With empty text the document's
// current text is transformed.
func (c *Client) ApplyAITransformToContent(ctx context.Context, id uuid.UUID, action, text string) (*models.Document, error) {
	if text == "" {
		current, err := c.ContentText(ctx, id)
		if err != nil {
			return nil, err
		}
		text = current
	}
	resp, err := c.AITransform(ctx, id, text, action)
	if err != nil {
		return nil, err
	}
	doc, _, err := c.UpdateContent(ctx, id, resp.Answer, FormatMarkdown)
	return doc, err
}

// ApplyAITranslateToContent translates text and writes the translation
// back as the document content. With empty text the document's current
// text is translated.
func (c *Client) ApplyAITranslateToContent(ctx context.Context, id uuid.UUID, language, text string) (*models.Document, error) {
	if text == "" {
		current, err := c.ContentText(ctx, id)
		if err != nil {
			return nil, err
		}
		text = current
	}
	resp, err := c.AITranslate(ctx, id, text, language)
	if err != nil {
		return nil, err
	}
	doc, _, err := c.UpdateContent(ctx, id, resp.Answer, FormatMarkdown)
	return doc, err
}
