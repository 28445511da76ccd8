// ABOUTME: Document models mirroring the Docs REST API wire format.
// ABOUTME: Content is an opaque base64 envelope around a CRDT update.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Link reach levels for document sharing.
const (
	LinkReachRestricted    = "restricted"
	LinkReachAuthenticated = "authenticated"
	LinkReachPublic        = "public"
)

// Positions accepted by the move endpoint.
const (
	PositionFirstChild = "first-child"
	PositionLastChild  = "last-child"
	PositionLeft       = "left"
	PositionRight      = "right"
)

// ListDocument is the document shape returned by list endpoints: metadata
// only, no content.
type ListDocument struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Depth              int       `json:"depth"`
	Path               string    `json:"path"`
	LinkReach          string    `json:"link_reach"`
	LinkRole           string    `json:"link_role"`
	Excerpt            string    `json:"excerpt,omitempty"`
	IsFavorite         bool      `json:"is_favorite"`
	NBAccessesAncestor int       `json:"nb_accesses_ancestors"`
	NBAccessesDirect   int       `json:"nb_accesses_direct"`
	NumChild           int       `json:"numchild"`
	UserRoles          []string  `json:"user_roles,omitempty"`
	Abilities          Abilities `json:"abilities,omitempty"`
}

// Document is the full document shape with the content envelope.
type Document struct {
	ListDocument
	Content string `json:"content,omitempty"`
}

// Abilities is the per-object permission map the API attaches to most
// resources. Values are opaque to this client.
type Abilities map[string]any

// DocumentList is a paginated list response.
type DocumentList struct {
	Count    int            `json:"count"`
	Next     string         `json:"next,omitempty"`
	Previous string         `json:"previous,omitempty"`
	Results  []ListDocument `json:"results"`
}

// ListFilters narrows and orders document list requests.
type ListFilters struct {
	IsCreatorMe *bool
	IsFavorite  *bool
	Title       string
	Ordering    string
	Page        int
	PageSize    int
}

// CreateDocumentRequest is the payload for document creation. Content, if
// set, must already be the base64 envelope.
type CreateDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

// UpdateDocumentRequest is the PATCH payload for a document. Websocket
// must be true whenever Content changes so the collaboration backend
// rebroadcasts the new state to connected editors.
type UpdateDocumentRequest struct {
	Title     string `json:"title,omitempty"`
	Content   string `json:"content,omitempty"`
	Websocket bool   `json:"websocket,omitempty"`
}

// MoveDocumentRequest repositions a document in the tree.
type MoveDocumentRequest struct {
	TargetDocumentID uuid.UUID `json:"target_document_id"`
	Position         string    `json:"position"`
}

// DuplicateDocumentRequest copies a document, optionally with accesses.
type DuplicateDocumentRequest struct {
	WithAccesses bool `json:"with_accesses"`
}

// LinkConfigurationRequest updates a document's share link settings.
type LinkConfigurationRequest struct {
	LinkReach string `json:"link_reach"`
	LinkRole  string `json:"link_role"`
}
