// ABOUTME: User, access and invitation models for the Docs API.
// ABOUTME: Role constants match the server-side access-control choices.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user can hold on a document.
const (
	RoleReader        = "reader"
	RoleEditor        = "editor"
	RoleAdministrator = "administrator"
	RoleOwner         = "owner"
)

// User is a Docs account.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	ShortName string    `json:"short_name,omitempty"`
	Language  string    `json:"language,omitempty"`
}

// UserList is a paginated user search response.
type UserList struct {
	Count   int    `json:"count,omitempty"`
	Results []User `json:"results"`
}

// Access is one user's permission on a document.
type Access struct {
	ID        uuid.UUID `json:"id"`
	User      *User     `json:"user,omitempty"`
	Team      string    `json:"team,omitempty"`
	Role      string    `json:"role"`
	Abilities Abilities `json:"abilities,omitempty"`
}

// CreateAccessRequest grants a role to a user.
type CreateAccessRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

// UpdateAccessRequest changes the role of an existing access.
type UpdateAccessRequest struct {
	Role string `json:"role"`
}

// Invitation is a pending email invitation to a document.
type Invitation struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Document  uuid.UUID `json:"document"`
	Issuer    *User     `json:"issuer,omitempty"`
	IsExpired bool      `json:"is_expired"`
	CreatedAt time.Time `json:"created_at"`
	Abilities Abilities `json:"abilities,omitempty"`
}

// CreateInvitationRequest invites an email address with a role.
type CreateInvitationRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
