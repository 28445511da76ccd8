// ABOUTME: Tests for access grants, the email-to-user resolution path
// ABOUTME: included.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestGrantAccessByEmail(t *testing.T) {
	docID := uuid.New()
	userID := uuid.New()
	var granted struct {
		UserID uuid.UUID `json:"user_id"`
		Role   string    `json:"role"`
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1.0/users/":
			if got := r.URL.Query().Get("q"); got != "alice@example.com" {
				t.Errorf("search query: got %q", got)
			}
			fmt.Fprintf(w, `[{"id":%q,"email":"alice@example.com"}]`, userID)
		case "/api/v1.0/documents/" + docID.String() + "/accesses/":
			if err := json.NewDecoder(r.Body).Decode(&granted); err != nil {
				t.Fatalf("decode grant body: %v", err)
			}
			fmt.Fprintf(w, `{"id":%q,"role":"editor"}`, uuid.New())
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	access, err := client.GrantAccessByEmail(context.Background(), docID, "alice@example.com", "editor")
	if err != nil {
		t.Fatalf("GrantAccessByEmail: %v", err)
	}
	if access.Role != "editor" {
		t.Errorf("Role: got %q", access.Role)
	}
	if granted.UserID != userID || granted.Role != "editor" {
		t.Errorf("grant body: got %+v", granted)
	}
}

func TestGrantAccessByEmailUnknownUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	_, err := client.GrantAccessByEmail(context.Background(), uuid.New(), "ghost@example.com", "reader")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
