// ABOUTME: MCP tools for access grants, invitations, and user lookup.
// ABOUTME: Grants accept an email and resolve it to a user account.

package mcp

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/docs-mcp/internal/models"
)

func (s *Server) registerAccessTools() {
	// docs_list_accesses
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_list_accesses",
		Description: "List who has access to a document and with which role",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"}
			},
			"required": ["document_id"]
		}`),
	}, s.handleListAccesses)

	// docs_grant_access
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_grant_access",
		Description: "Grant a user access to a document by email",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"},
				"user_email": {"type": "string", "description": "Email of the user to grant access to"},
				"role": {"type": "string", "description": "Role: reader, editor, administrator or owner", "default": "reader"}
			},
			"required": ["document_id", "user_email"]
		}`),
	}, s.handleGrantAccess)

	// docs_update_access
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_update_access",
		Description: "Change the role of an existing access",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"},
				"access_id": {"type": "string", "description": "Access UUID"},
				"role": {"type": "string", "description": "New role"}
			},
			"required": ["document_id", "access_id", "role"]
		}`),
	}, s.handleUpdateAccess)

	// docs_revoke_access
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_revoke_access",
		Description: "Revoke a user's access to a document",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"},
				"access_id": {"type": "string", "description": "Access UUID"}
			},
			"required": ["document_id", "access_id"]
		}`),
	}, s.handleRevokeAccess)

	// docs_invite_user
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_invite_user",
		Description: "Invite an email address without an account yet to a document",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"},
				"email": {"type": "string", "description": "Email address to invite"},
				"role": {"type": "string", "description": "Role the invitee will get", "default": "reader"}
			},
			"required": ["document_id", "email"]
		}`),
	}, s.handleInviteUser)

	// docs_list_invitations
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_list_invitations",
		Description: "List pending invitations on a document",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"}
			},
			"required": ["document_id"]
		}`),
	}, s.handleListInvitations)

	// docs_cancel_invitation
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_cancel_invitation",
		Description: "Cancel a pending invitation",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"document_id": {"type": "string", "description": "Document UUID"},
				"invitation_id": {"type": "string", "description": "Invitation UUID"}
			},
			"required": ["document_id", "invitation_id"]
		}`),
	}, s.handleCancelInvitation)

	// docs_search_users
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_search_users",
		Description: "Search users by email or name",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search query (email or name)"},
				"document_id": {"type": "string", "description": "Exclude users who already have access to this document"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchUsers)

	// docs_get_current_user
	s.server.AddTool(&mcp.Tool{
		Name:        "docs_get_current_user",
		Description: "Get the account the API token belongs to",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleGetCurrentUser)
}

func (s *Server) handleListAccesses(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	accesses, err := s.api.ListAccesses(ctx, id)
	if err != nil {
		return errorResult("failed to list accesses: %v", err), nil
	}
	return jsonResult(accesses), nil
}

func (s *Server) handleGrantAccess(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		DocumentID string `json:"document_id"`
		UserEmail  string `json:"user_email"`
		Role       string `json:"role"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	if params.Role == "" {
		params.Role = models.RoleReader
	}
	id, err := parseID("document_id", params.DocumentID)
	if err != nil {
		return errorResult("%v", err), nil
	}

	access, err := s.api.GrantAccessByEmail(ctx, id, params.UserEmail, params.Role)
	if err != nil {
		return errorResult("failed to grant access: %v", err), nil
	}
	return jsonResult(access), nil
}

func (s *Server) handleUpdateAccess(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		DocumentID string `json:"document_id"`
		AccessID   string `json:"access_id"`
		Role       string `json:"role"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	id, err := parseID("document_id", params.DocumentID)
	if err != nil {
		return errorResult("%v", err), nil
	}
	accessID, err := parseID("access_id", params.AccessID)
	if err != nil {
		return errorResult("%v", err), nil
	}

	access, err := s.api.UpdateAccess(ctx, id, accessID, params.Role)
	if err != nil {
		return errorResult("failed to update access: %v", err), nil
	}
	return jsonResult(access), nil
}

func (s *Server) handleRevokeAccess(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		DocumentID string `json:"document_id"`
		AccessID   string `json:"access_id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	id, err := parseID("document_id", params.DocumentID)
	if err != nil {
		return errorResult("%v", err), nil
	}
	accessID, err := parseID("access_id", params.AccessID)
	if err != nil {
		return errorResult("%v", err), nil
	}

	if err := s.api.RevokeAccess(ctx, id, accessID); err != nil {
		return errorResult("failed to revoke access: %v", err), nil
	}
	return textResult("Revoked access %s on document %s", accessID, id), nil
}

func (s *Server) handleInviteUser(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		DocumentID string `json:"document_id"`
		Email      string `json:"email"`
		Role       string `json:"role"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	if params.Role == "" {
		params.Role = models.RoleReader
	}
	id, err := parseID("document_id", params.DocumentID)
	if err != nil {
		return errorResult("%v", err), nil
	}

	inv, err := s.api.CreateInvitation(ctx, id, params.Email, params.Role)
	if err != nil {
		return errorResult("failed to invite user: %v", err), nil
	}
	return jsonResult(inv), nil
}

func (s *Server) handleListInvitations(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	invitations, err := s.api.ListInvitations(ctx, id)
	if err != nil {
		return errorResult("failed to list invitations: %v", err), nil
	}
	return jsonResult(invitations), nil
}

func (s *Server) handleCancelInvitation(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		DocumentID   string `json:"document_id"`
		InvitationID string `json:"invitation_id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	id, err := parseID("document_id", params.DocumentID)
	if err != nil {
		return errorResult("%v", err), nil
	}
	invitationID, err := parseID("invitation_id", params.InvitationID)
	if err != nil {
		return errorResult("%v", err), nil
	}

	if err := s.api.DeleteInvitation(ctx, id, invitationID); err != nil {
		return errorResult("failed to cancel invitation: %v", err), nil
	}
	return textResult("Cancelled invitation %s on document %s", invitationID, id), nil
}

func (s *Server) handleSearchUsers(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Query      string `json:"query"`
		DocumentID string `json:"document_id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	var docID *uuid.UUID
	if params.DocumentID != "" {
		id, err := parseID("document_id", params.DocumentID)
		if err != nil {
			return errorResult("%v", err), nil
		}
		docID = &id
	}

	users, err := s.api.SearchUsers(ctx, params.Query, docID)
	if err != nil {
		return errorResult("failed to search users: %v", err), nil
	}
	return jsonResult(users), nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := s.api.GetCurrentUser(ctx)
	if err != nil {
		return errorResult("failed to get current user: %v", err), nil
	}
	return jsonResult(user), nil
}
