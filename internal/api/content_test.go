// ABOUTME: Tests for the content pipeline: read, write, conversion fallback.
// ABOUTME: Fakes the Docs backend with httptest and real CRDT envelopes.

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/harper/docs-mcp/internal/blocknote"
	"github.com/harper/docs-mcp/internal/yjs"
)

// envelopeFor builds a stored content envelope the way the editor would.
func envelopeFor(t *testing.T, text string) string {
	t.Helper()
	replica, err := blocknote.NewMapper().Replica(blocknote.FromPlainText(text))
	if err != nil {
		t.Fatalf("Replica: %v", err)
	}
	return yjs.EncodeEnvelope(replica.Snapshot())
}

// envelopeText decodes a stored envelope back to plain text.
func envelopeText(t *testing.T, envelope string) string {
	t.Helper()
	update, err := yjs.DecodeEnvelope(envelope)
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	replica, err := yjs.Load(update)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return blocknote.ExtractText(replica.Root(yjs.StoreKey))
}

func TestContentText(t *testing.T) {
	id := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1.0/documents/"+id.String()+"/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprintf(w, `{"id":%q,"title":"T","content":%q}`, id, envelopeFor(t, "Hello\n\nWorld"))
	})

	text, err := client.ContentText(context.Background(), id)
	if err != nil {
		t.Fatalf("ContentText: %v", err)
	}
	if text != "Hello\nWorld" {
		t.Errorf("got %q, want %q", text, "Hello\nWorld")
	}
}

func TestContentTextEmptyDocument(t *testing.T) {
	id := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id":%q,"title":"T"}`, id)
	})

	text, err := client.ContentText(context.Background(), id)
	if err != nil {
		t.Fatalf("ContentText: %v", err)
	}
	if text != "" {
		t.Errorf("got %q, want empty", text)
	}
}

func TestUpdateContentText(t *testing.T) {
	id := uuid.New()
	var patched struct {
		Content   string `json:"content"`
		Websocket bool   `json:"websocket"`
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&patched); err != nil {
			t.Fatalf("decode PATCH body: %v", err)
		}
		fmt.Fprintf(w, `{"id":%q,"title":"T"}`, id)
	})

	_, source, err := client.UpdateContent(context.Background(), id, "New text", FormatText)
	if err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	if source != ConversionNone {
		t.Errorf("conversion source: got %q, want %q", source, ConversionNone)
	}
	if !patched.Websocket {
		t.Error("PATCH must set websocket so live editors get the update")
	}
	if got := envelopeText(t, patched.Content); got != "New text" {
		t.Errorf("stored envelope decodes to %q, want %q", got, "New text")
	}
}

func TestUpdateContentMarkdownRemote(t *testing.T) {
	id := uuid.New()
	remoteEnvelope := envelopeFor(t, "converted remotely")
	var patchedContent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1.0/convert/":
			fmt.Fprintf(w, `{"content":%q}`, remoteEnvelope)
		default:
			var body struct {
				Content string `json:"content"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			patchedContent = body.Content
			fmt.Fprintf(w, `{"id":%q,"title":"T"}`, id)
		}
	})

	_, source, err := client.UpdateContent(context.Background(), id, "# Title", FormatMarkdown)
	if err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	if source != ConversionRemote {
		t.Errorf("conversion source: got %q, want %q", source, ConversionRemote)
	}
	if patchedContent != remoteEnvelope {
		t.Error("expected the remote converter's envelope to be stored as-is")
	}
}

func TestUpdateContentMarkdownLocalFallback(t *testing.T) {
	id := uuid.New()
	var patchedContent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1.0/convert/":
			w.WriteHeader(http.StatusBadGateway)
		default:
			var body struct {
				Content string `json:"content"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			patchedContent = body.Content
			fmt.Fprintf(w, `{"id":%q,"title":"T"}`, id)
		}
	})

	_, source, err := client.UpdateContent(context.Background(), id, "# Title\n\nBody.", FormatMarkdown)
	if err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	if source != ConversionLocal {
		t.Errorf("conversion source: got %q, want %q", source, ConversionLocal)
	}
	if got := envelopeText(t, patchedContent); got != "Title\nBody." {
		t.Errorf("local conversion stored %q, want %q", got, "Title\nBody.")
	}
}

func TestUpdateContentInvalidFormat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an invalid format")
	})

	_, _, err := client.UpdateContent(context.Background(), uuid.New(), "x", "html")
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestApplyAITransformToContent(t *testing.T) {
	id := uuid.New()
	var patchedContent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1.0/documents/" + id.String() + "/":
			if r.Method == http.MethodGet {
				fmt.Fprintf(w, `{"id":%q,"title":"T","content":%q}`, id, envelopeFor(t, "sloppy text"))
				return
			}
			var body struct {
				Content string `json:"content"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			patchedContent = body.Content
			fmt.Fprintf(w, `{"id":%q,"title":"T"}`, id)
		case "/api/v1.0/documents/" + id.String() + "/ai-transform/":
			var req struct {
				Text   string `json:"text"`
				Action string `json:"action"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			if req.Text != "sloppy text" || req.Action != "correct" {
				t.Errorf("unexpected AI request: %+v", req)
			}
			fmt.Fprint(w, `{"answer":"Polished text."}`)
		case "/api/v1.0/convert/":
			w.WriteHeader(http.StatusBadGateway)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	if _, err := client.ApplyAITransformToContent(context.Background(), id, "correct", ""); err != nil {
		t.Fatalf("ApplyAITransformToContent: %v", err)
	}
	if got := envelopeText(t, patchedContent); got != "Polished text." {
		t.Errorf("stored %q, want the AI answer", got)
	}
}

func TestCreateDocumentWithTextAsChild(t *testing.T) {
	parent := uuid.New()
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprintf(w, `{"id":%q,"title":"Child"}`, uuid.New())
	})

	_, _, err := client.CreateDocumentWithText(context.Background(), "Child", "body", FormatText, &parent)
	if err != nil {
		t.Fatalf("CreateDocumentWithText: %v", err)
	}
	want := "/api/v1.0/documents/" + parent.String() + "/children/"
	if gotPath != want {
		t.Errorf("path: got %q, want %q", gotPath, want)
	}
}
