// ABOUTME: MCP tools for document CRUD and tree operations.
// ABOUTME: Maps the documents endpoints to the MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/docs-mcp/internal/models"
)

func (s *Server) registerDocumentTools() {
	// docs_list_documents
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_list_documents",
		Description: "List documents accessible to the current user",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"is_creator_me": {"type": "boolean", "description": "Only documents created by me"},
				"is_favorite": {"type": "boolean", "description": "Only favorite documents"},
				"title": {"type": "string", "description": "Filter by title substring"},
				"ordering": {"type": "string", "description": "Sort field, e.g. -updated_at"},
				"page": {"type": "integer", "description": "Page number"},
				"page_size": {"type": "integer", "description": "Results per page"}
			}
		}`),
	}, s.handleListDocuments)

	// docs_get_document
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_get_document",
		Description: "Get a document's metadata and raw content envelope by ID",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"}
			},
			"required": ["document_id"]
		}`),
	}, s.handleGetDocument)

	// docs_create_document
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_create_document",
		Description: "Create a new document, optionally with initial content and a parent",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Document title"},
				"content": {"type": "string", "description": "Initial content as plain text or markdown"},
				"format": {"type": "string", "description": "Content format: text or markdown", "default": "text"},
				"parent_id": {"type": "string", "description": "Parent document UUID (creates a child)"}
			},
			"required": ["title"]
		}`),
	}, s.handleCreateDocument)

	// docs_update_document
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_update_document",
		Description: "Update a document's title",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"},
				"title": {"type": "string", "description": "New title"}
			},
			"required": ["document_id", "title"]
		}`),
	}, s.handleUpdateDocument)

	// docs_delete_document
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_delete_document",
		Description: "Move a document to the trashbin",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"}
			},
			"required": ["document_id"]
		}`),
	}, s.handleDeleteDocument)

	// docs_restore_document
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_restore_document",
		Description: "Restore a document from the trashbin",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"}
			},
			"required": ["document_id"]
		}`),
	}, s.handleRestoreDocument)

	// docs_move_document
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_move_document",
		Description: "Move a document relative to a target document",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"},
				"target_id": {"type": "string", "description": "Target document UUID"},
				"position": {"type": "string", "description": "Position: first-child, last-child, left or right", "default": "last-child"}
			},
			"required": ["document_id", "target_id"]
		}`),
	}, s.handleMoveDocument)

	// docs_duplicate_document
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_duplicate_document",
		Description: "Duplicate a document, optionally carrying its accesses over",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"},
				"with_accesses": {"type": "boolean", "description": "Copy access grants too", "default": false}
			},
			"required": ["document_id"]
		}`),
	}, s.handleDuplicateDocument)

	// docs_get_children
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_get_children",
		Description: "List the direct children of a document",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"}
			},
			"required": ["document_id"]
		}`),
	}, s.handleGetChildren)

	// docs_get_tree
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_get_tree",
		Description: "Get the document tree a document belongs to",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"}
			},
			"required": ["document_id"]
		}`),
	}, s.handleGetTree)
}

func (s *Server) handleListDocuments(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		IsCreatorMe *bool  `json:"is_creator_me"`
		IsFavorite  *bool  `json:"is_favorite"`
		Title       string `json:"title"`
		Ordering    string `json:"ordering"`
		Page        int    `json:"page"`
		PageSize    int    `json:"page_size"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	list, err := s.api.ListDocuments(ctx, &models.ListFilters{
		IsCreatorMe: params.IsCreatorMe,
		IsFavorite:  params.IsFavorite,
		Title:       params.Title,
		Ordering:    params.Ordering,
		Page:        params.Page,
		PageSize:    params.PageSize,
	})
	if err != nil {
		return errorResult("failed to list documents: %v", err), nil
	}
	return jsonResult(list), nil
}

func (s *Server) handleGetDocument(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	doc, err := s.api.GetDocument(ctx, id)
	if err != nil {
		return errorResult("failed to get document: %v", err), nil
	}
	return jsonResult(doc), nil
}

func (s *Server) handleCreateDocument(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Format   string `json:"format"`
		ParentID string `json:"parent_id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	var parentID *uuid.UUID
	if params.ParentID != "" {
		id, err := parseID("parent_id", params.ParentID)
		if err != nil {
			return errorResult("%v", err), nil
		}
		parentID = &id
	}

	doc, _, err := s.api.CreateDocumentWithText(ctx, params.Title, params.Content, params.Format, parentID)
	if err != nil {
		return errorResult("failed to create document: %v", err), nil
	}
	return jsonResult(doc), nil
}

func (s *Server) handleUpdateDocument(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		DocumentID string `json:"document_id"`
		Title      string `json:"title"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	id, err := parseID("document_id", params.DocumentID)
	if err != nil {
		return errorResult("%v", err), nil
	}

	doc, err := s.api.UpdateDocument(ctx, id, &models.UpdateDocumentRequest{Title: params.Title})
	if err != nil {
		return errorResult("failed to update document: %v", err), nil
	}
	return jsonResult(doc), nil
}

func (s *Server) handleDeleteDocument(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	if err := s.api.DeleteDocument(ctx, id); err != nil {
		return errorResult("failed to delete document: %v", err), nil
	}
	return textResult("Moved document %s to trashbin", id), nil
}

func (s *Server) handleRestoreDocument(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	if err := s.api.RestoreDocument(ctx, id); err != nil {
		return errorResult("failed to restore document: %v", err), nil
	}
	return textResult("Restored document %s", id), nil
}

func (s *Server) handleMoveDocument(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		DocumentID string `json:"document_id"`
		TargetID   string `json:"target_id"`
		Position   string `json:"position"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	if params.Position == "" {
		params.Position = models.PositionLastChild
	}
	id, err := parseID("document_id", params.DocumentID)
	if err != nil {
		return errorResult("%v", err), nil
	}
	targetID, err := parseID("target_id", params.TargetID)
	if err != nil {
		return errorResult("%v", err), nil
	}

	err = s.api.MoveDocument(ctx, id, &models.MoveDocumentRequest{
		TargetDocumentID: targetID,
		Position:         params.Position,
	})
	if err != nil {
		return errorResult("failed to move document: %v", err), nil
	}
	return textResult("Moved document %s to %s of %s", id, params.Position, targetID), nil
}

func (s *Server) handleDuplicateDocument(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		DocumentID   string `json:"document_id"`
		WithAccesses bool   `json:"with_accesses"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	id, err := parseID("document_id", params.DocumentID)
	if err != nil {
		return errorResult("%v", err), nil
	}

	doc, err := s.api.DuplicateDocument(ctx, id, params.WithAccesses)
	if err != nil {
		return errorResult("failed to duplicate document: %v", err), nil
	}
	return jsonResult(doc), nil
}

func (s *Server) handleGetChildren(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	children, err := s.api.GetChildren(ctx, id)
	if err != nil {
		return errorResult("failed to get children: %v", err), nil
	}
	return jsonResult(children), nil
}

func (s *Server) handleGetTree(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	tree, err := s.api.GetTree(ctx, id)
	if err != nil {
		return errorResult("failed to get tree: %v", err), nil
	}
	return jsonResult(tree), nil
}
