// ABOUTME: MCP resources exposing document listings and content.
// ABOUTME: Static listing resources plus a per-document text template.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         "docs://documents",
		Name:        "All Documents",
		Description: "List of all accessible documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         "docs://favorites",
		Name:        "Favorite Documents",
		Description: "The current user's favorite documents",
		MIMEType:    "application/json",
	}, s.handleFavoritesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         "docs://trashbin",
		Name:        "Deleted Documents",
		Description: "Documents in the trashbin, still restorable",
		MIMEType:    "application/json",
	}, s.handleTrashbinResource)

	s.server.AddResource(&mcp.Resource{
		URI:         "docs://user",
		Name:        "Current User",
		Description: "The account the API token belongs to",
		MIMEType:    "application/json",
	}, s.handleUserResource)

	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: "docs://document/{id}",
			Name:        "Document",
			Description: "A document's content as plain text",
			MIMEType:    "text/plain",
		},
		s.handleDocumentResource,
	)
}

func jsonContents(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

func (s *Server) handleDocumentsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	list, err := s.api.ListDocuments(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return jsonContents(req.Params.URI, list)
}

func (s *Server) handleFavoritesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	list, err := s.api.ListFavorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return jsonContents(req.Params.URI, list)
}

func (s *Server) handleTrashbinResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	list, err := s.api.ListTrashbin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trashbin: %w", err)
	}
	return jsonContents(req.Params.URI, list)
}

func (s *Server) handleUserResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	user, err := s.api.GetCurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return jsonContents(req.Params.URI, user)
}

func (s *Server) handleDocumentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	idStr, ok := strings.CutPrefix(req.Params.URI, "docs://document/")
	if !ok || idStr == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid document id in URI %s: %w", req.Params.URI, err)
	}

	text, err := s.api.ContentText(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     text,
			},
		},
	}, nil
}
