// ABOUTME: MCP tools for reading and writing document content as text.
// ABOUTME: Wraps the CRDT envelope handling so agents never see base64.

package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerContentTools() {
	// docs_get_document_content
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_get_document_content",
		Description: "Get a document's content as plain text",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"}
			},
			"required": ["document_id"]
		}`),
	}, s.handleGetDocumentContent)

	// docs_update_document_content
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_update_document_content",
		Description: "Replace a document's content with plain text or markdown",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"},
				"content": {"type": "string", "description": "New content"},
				"format": {"type": "string", "description": "Content format: text or markdown", "default": "text"}
			},
			"required": ["document_id", "content"]
		}`),
	}, s.handleUpdateDocumentContent)
}

func (s *Server) handleGetDocumentContent(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		DocumentID string `json:"document_id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	id, err := parseID("document_id", params.DocumentID)
	if err != nil {
		return errorResult("%v", err), nil
	}

	text, err := s.api.ContentText(ctx, id)
	if err != nil {
		return errorResult("failed to read document content: %v", err), nil
	}
	return textResult("%s", text), nil
}

func (s *Server) handleUpdateDocumentContent(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		DocumentID string `json:"document_id"`
		Content    string `json:"content"`
		Format     string `json:"format"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	id, err := parseID("document_id", params.DocumentID)
	if err != nil {
		return errorResult("%v", err), nil
	}

	doc, source, err := s.api.UpdateContent(ctx, id, params.Content, params.Format)
	if err != nil {
		return errorResult("failed to update document content: %v", err), nil
	}
	s.log.Debug("content updated", "document", id, "conversion", source)
	return textResult("Updated content of document %s (%s)", doc.ID, doc.Title), nil
}
