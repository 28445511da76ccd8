// ABOUTME: MCP tools for favorites, trashbin, version history and AI.
// ABOUTME: AI answers are returned as text; content writes are separate.

package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerMetaTools() {
	// docs_add_favorite
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_add_favorite",
		Description: "Mark a document as favorite",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"}
			},
			"required": ["document_id"]
		}`),
	}, s.handleAddFavorite)

	// docs_remove_favorite
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_remove_favorite",
		Description: "Remove a document from favorites",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"}
			},
			"required": ["document_id"]
		}`),
	}, s.handleRemoveFavorite)

	// docs_list_favorites
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_list_favorites",
		Description: "List favorite documents",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleListFavorites)

	// docs_list_trashbin
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_list_trashbin",
		Description: "List deleted documents still restorable from the trashbin",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleListTrashbin)

	// docs_list_versions
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_list_versions",
		Description: "List a document's version history",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"},
				"page_size": {"type": "integer", "description": "Versions per page", "default": 20}
			},
			"required": ["document_id"]
		}`),
	}, s.handleListVersions)

	// docs_get_version
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_get_version",
		Description: "Get one historical version of a document as plain text",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"},
				"version_id": {"type": "string", "description": "Version ID from docs_list_versions"}
			},
			"required": ["document_id", "version_id"]
		}`),
	}, s.handleGetVersion)

	// docs_ai_transform
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_ai_transform",
		Description: "Run the backend AI over text: correct, rephrase, summarize, prompt, beautify or emojify",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID (scopes the AI call)"},
				"text": {"type": "string", "description": "Text to transform"},
				"action": {"type": "string", "description": "AI action: correct, rephrase, summarize, prompt, beautify, emojify"}
			},
			"required": ["document_id", "text", "action"]
		}`),
	}, s.handleAITransform)

	// docs_ai_translate
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_ai_translate",
		Description: "Translate text with the backend AI",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID (scopes the AI call)"},
				"text": {"type": "string", "description": "Text to translate"},
				"language": {"type": "string", "description": "Target language code (e.g. 'fr', 'en', 'es', 'de')"}
			},
			"required": ["document_id", "text", "language"]
		}`),
	}, s.handleAITranslate)
}

func (s *Server) handleAddFavorite(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	if err := s.api.AddFavorite(ctx, id); err != nil {
		return errorResult("failed to add favorite: %v", err), nil
	}
	return textResult("Added document %s to favorites", id), nil
}

func (s *Server) handleRemoveFavorite(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	if err := s.api.RemoveFavorite(ctx, id); err != nil {
		return errorResult("failed to remove favorite: %v", err), nil
	}
	return textResult("Removed document %s from favorites", id), nil
}

func (s *Server) handleListFavorites(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.api.ListFavorites(ctx)
	if err != nil {
		return errorResult("failed to list favorites: %v", err), nil
	}
	return jsonResult(list), nil
}

func (s *Server) handleListTrashbin(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.api.ListTrashbin(ctx)
	if err != nil {
		return errorResult("failed to list trashbin: %v", err), nil
	}
	return jsonResult(list), nil
}

func (s *Server) handleListVersions(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		DocumentID string `json:"document_id"`
		PageSize   int    `json:"page_size"`
	}
	params.PageSize = 20
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	id, err := parseID("document_id", params.DocumentID)
	if err != nil {
		return errorResult("%v", err), nil
	}

	list, err := s.api.ListVersions(ctx, id, params.PageSize, "")
	if err != nil {
		return errorResult("failed to list versions: %v", err), nil
	}
	return jsonResult(list), nil
}

func (s *Server) handleGetVersion(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		DocumentID string `json:"document_id"`
		VersionID  string `json:"version_id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	id, err := parseID("document_id", params.DocumentID)
	if err != nil {
		return errorResult("%v", err), nil
	}

	text, err := s.api.VersionText(ctx, id, params.VersionID)
	if err != nil {
		return errorResult("failed to get version: %v", err), nil
	}
	return textResult("%s", text), nil
}

func (s *Server) handleAITransform(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		DocumentID string `json:"document_id"`
		Text       string `json:"text"`
		Action     string `json:"action"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	id, err := parseID("document_id", params.DocumentID)
	if err != nil {
		return errorResult("%v", err), nil
	}

	resp, err := s.api.AITransform(ctx, id, params.Text, params.Action)
	if err != nil {
		return errorResult("AI transform failed: %v", err), nil
	}
	return textResult("%s", resp.Answer), nil
}

func (s *Server) handleAITranslate(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		DocumentID string `json:"document_id"`
		Text       string `json:"text"`
		Language   string `json:"language"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	id, err := parseID("document_id", params.DocumentID)
	if err != nil {
		return errorResult("%v", err), nil
	}

	resp, err := s.api.AITranslate(ctx, id, params.Text, params.Language)
	if err != nil {
		return errorResult("AI translate failed: %v", err), nil
	}
	return textResult("%s", resp.Answer), nil
}
