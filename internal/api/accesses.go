// ABOUTME: Document access and invitation endpoints.
// ABOUTME: GrantAccessByEmail resolves the email to a user first.

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/harper/docs-mcp/internal/models"
)

// ListAccesses returns every user's role on a document.
func (c *Client) ListAccesses(ctx context.Context, documentID uuid.UUID) ([]models.Access, error) {
	data, err := c.do(ctx, http.MethodGet, "documents/"+documentID.String()+"/accesses/", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Access](data)
}

// GrantAccess gives a user a role on a document.
func (c *Client) GrantAccess(ctx context.Context, documentID, userID uuid.UUID, role string) (*models.Access, error) {
	req := &models.CreateAccessRequest{UserID: userID, Role: role}
	var access models.Access
	if err := c.doJSON(ctx, http.MethodPost, "documents/"+documentID.String()+"/accesses/", nil, req, &access); err != nil {
		return nil, err
	}
	return &access, nil
}

// GrantAccessByEmail looks the user up by email, then grants the role.
func (c *Client) GrantAccessByEmail(ctx context.Context, documentID uuid.UUID, email, role string) (*models.Access, error) {
	users, err := c.SearchUsers(ctx, email, nil)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: no user with email %s", ErrNotFound, email)
	}
	return c.GrantAccess(ctx, documentID, users[0].ID, role)
}

// UpdateAccess changes the role of an existing access.
func (c *Client) UpdateAccess(ctx context.Context, documentID, accessID uuid.UUID, role string) (*models.Access, error) {
	req := &models.UpdateAccessRequest{Role: role}
	var access models.Access
	if err := c.doJSON(ctx, http.MethodPatch, "documents/"+documentID.String()+"/accesses/"+accessID.String()+"/", nil, req, &access); err != nil {
		return nil, err
	}
	return &access, nil
}

// RevokeAccess removes a user's access to a document.
func (c *Client) RevokeAccess(ctx context.Context, documentID, accessID uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, "documents/"+documentID.String()+"/accesses/"+accessID.String()+"/", nil, nil, nil)
}

// CreateInvitation invites an email address that has no account yet.
func (c *Client) CreateInvitation(ctx context.Context, documentID uuid.UUID, email, role string) (*models.Invitation, error) {
	req := &models.CreateInvitationRequest{Email: email, Role: role}
	var inv models.Invitation
	if err := c.doJSON(ctx, http.MethodPost, "documents/"+documentID.String()+"/invitations/", nil, req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListInvitations returns pending invitations on a document.
func (c *Client) ListInvitations(ctx context.Context, documentID uuid.UUID) ([]models.Invitation, error) {
	data, err := c.do(ctx, http.MethodGet, "documents/"+documentID.String()+"/invitations/", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Invitation](data)
}

// DeleteInvitation cancels a pending invitation.
func (c *Client) DeleteInvitation(ctx context.Context, documentID, invitationID uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, "documents/"+documentID.String()+"/invitations/"+invitationID.String()+"/", nil, nil, nil)
}
