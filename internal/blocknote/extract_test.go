// ABOUTME: Tests for plain text extraction from document trees.
// ABOUTME: Canonical trees, non-canonical trees, and nil input.

package blocknote

import (
	"testing"

	"github.com/harper/docs-mcp/internal/yjs"
)

func TestExtractTextBlocks(t *testing.T) {
	m := NewMapper()
	tree, err := m.Tree([]LogicalBlock{
		Heading(1, "Title"),
		Paragraph("Hello"),
		Paragraph("World"),
	})
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}

	got := ExtractText(tree)
	want := "Title\nHello\nWorld"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractTextSoftBreak(t *testing.T) {
	m := NewMapper()
	tree, _ := m.Tree([]LogicalBlock{Paragraph("line one\nline two")})

	got := ExtractText(tree)
	if got != "line one\nline two" {
		t.Errorf("got %q, want soft break preserved", got)
	}
}

func TestExtractTextNonCanonicalTree(t *testing.T) {
	// Text directly under the root, no containers at all.
	root := &yjs.Fragment{Children: []yjs.Node{
		&yjs.Text{Content: "bare "},
		&yjs.Text{Content: "text"},
	}}

	if got := ExtractText(root); got != "bare text" {
		t.Errorf("got %q, want %q", got, "bare text")
	}
}

func TestExtractTextEmpty(t *testing.T) {
	if got := ExtractText(nil); got != "" {
		t.Errorf("nil root: got %q", got)
	}

	m := NewMapper()
	tree, _ := m.Tree(nil)
	if got := ExtractText(tree); got != "" {
		t.Errorf("empty document: got %q", got)
	}
}

func TestExtractTextRoundTripFromUpdate(t *testing.T) {
	m := NewMapper()
	replica, err := m.Replica(FromPlainText("Hello\n\nWorld"))
	if err != nil {
		t.Fatalf("Replica: %v", err)
	}
	loaded, err := yjs.Load(replica.Snapshot())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := ExtractText(loaded.Root(yjs.StoreKey))
	if got != "Hello\nWorld" {
		t.Errorf("got %q, want %q", got, "Hello\nWorld")
	}
}
