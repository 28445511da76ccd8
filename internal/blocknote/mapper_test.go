// ABOUTME: Tests for the block mapper: strict writes, resilient reads.
// ABOUTME: Covers defaults, unsupported kinds, and malformed trees.

package blocknote

import (
	"errors"
	"slices"
	"testing"

	"github.com/harper/docs-mcp/internal/yjs"
)

func treeBlocks(t *testing.T, m *Mapper, root yjs.Node) []LogicalBlock {
	t.Helper()
	var out []LogicalBlock
	for b := range m.Blocks(root) {
		out = append(out, b)
	}
	return out
}

func TestTreeCanonicalShape(t *testing.T) {
	m := NewMapper()
	tree, err := m.Tree([]LogicalBlock{Paragraph("Hello")})
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}

	if len(tree.Children) != 1 {
		t.Fatalf("expected one blockGroup, got %d roots", len(tree.Children))
	}
	group := tree.Children[0].(*yjs.Element)
	if group.Tag != "blockGroup" {
		t.Fatalf("expected blockGroup, got %q", group.Tag)
	}
	container := group.Children[0].(*yjs.Element)
	if container.Tag != "blockContainer" {
		t.Fatalf("expected blockContainer, got %q", container.Tag)
	}
	if container.Attrs["id"] == "" {
		t.Error("blockContainer is missing its id")
	}

	para := container.Children[0].(*yjs.Element)
	if para.Tag != KindParagraph {
		t.Fatalf("expected paragraph, got %q", para.Tag)
	}
	for k, v := range DefaultStyles() {
		if para.Attrs[k] != v {
			t.Errorf("style %s: got %q, want %q", k, para.Attrs[k], v)
		}
	}
	text := para.Children[0].(*yjs.Text)
	if text.Content != "Hello" {
		t.Errorf("got text %q, want %q", text.Content, "Hello")
	}
}

func TestTreeFreshIDs(t *testing.T) {
	m := NewMapper()
	blocks := []LogicalBlock{Paragraph("x")}

	first, _ := m.Tree(blocks)
	second, _ := m.Tree(blocks)

	id := func(f *yjs.Fragment) string {
		return f.Children[0].(*yjs.Element).Children[0].(*yjs.Element).Attrs["id"]
	}
	if id(first) == id(second) {
		t.Error("expected fresh container ids per call")
	}
}

func TestTreeEmptyInput(t *testing.T) {
	m := NewMapper()
	tree, err := m.Tree(nil)
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}

	group := tree.Children[0].(*yjs.Element)
	if len(group.Children) != 1 {
		t.Fatalf("expected exactly one container, got %d", len(group.Children))
	}
	para := group.Children[0].(*yjs.Element).Children[0].(*yjs.Element)
	if para.Tag != KindParagraph {
		t.Errorf("expected an empty paragraph, got %q", para.Tag)
	}
	if got := subtreeText(para); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestTreeUnsupportedKind(t *testing.T) {
	m := NewMapper()
	_, err := m.Tree([]LogicalBlock{{Kind: "video"}})

	var uerr *UnsupportedKindError
	if !errors.As(err, &uerr) {
		t.Fatalf("got %v, want UnsupportedKindError", err)
	}
	if uerr.Kind != "video" {
		t.Errorf("error names kind %q, want %q", uerr.Kind, "video")
	}
}

func TestTreeHeadingKeepsLevel(t *testing.T) {
	m := NewMapper()
	tree, err := m.Tree([]LogicalBlock{Heading(3, "Title")})
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}

	h := tree.Children[0].(*yjs.Element).Children[0].(*yjs.Element).Children[0].(*yjs.Element)
	if h.Tag != KindHeading {
		t.Fatalf("got %q, want heading", h.Tag)
	}
	if h.Attrs["level"] != "3" {
		t.Errorf("level: got %q, want %q", h.Attrs["level"], "3")
	}
}

func TestBlocksRoundTrip(t *testing.T) {
	m := NewMapper()
	in := []LogicalBlock{
		Heading(1, "Title"),
		Paragraph("First paragraph"),
		Paragraph("Second\nparagraph"),
	}

	tree, err := m.Tree(in)
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	out := treeBlocks(t, m, tree)

	if len(out) != len(in) {
		t.Fatalf("got %d blocks, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Kind != in[i].Kind || out[i].Text != in[i].Text {
			t.Errorf("block %d: got %q %q, want %q %q",
				i, out[i].Kind, out[i].Text, in[i].Kind, in[i].Text)
		}
	}
}

func TestBlocksSkipsEmptyContainers(t *testing.T) {
	m := NewMapper()
	root := &yjs.Fragment{Children: []yjs.Node{
		yjs.NewElement("blockGroup", nil, []yjs.Node{
			// No structural child at all.
			yjs.NewElement("blockContainer", map[string]string{"id": "a"}, nil),
			yjs.NewElement("blockContainer", map[string]string{"id": "b"}, []yjs.Node{
				yjs.NewElement("paragraph", nil, []yjs.Node{&yjs.Text{Content: "kept"}}),
			}),
		}),
	}}

	out := treeBlocks(t, m, root)
	if len(out) != 1 || out[0].Text != "kept" {
		t.Errorf("got %v, want single block %q", out, "kept")
	}
}

func TestBlocksReadsUnknownTags(t *testing.T) {
	m := NewMapper()
	root := &yjs.Fragment{Children: []yjs.Node{
		yjs.NewElement("blockGroup", nil, []yjs.Node{
			yjs.NewElement("blockContainer", map[string]string{"id": "a"}, []yjs.Node{
				yjs.NewElement("customWidget", map[string]string{"mode": "x"}, []yjs.Node{
					&yjs.Text{Content: "opaque content"},
				}),
			}),
		}),
	}}

	out := treeBlocks(t, m, root)
	if len(out) != 1 {
		t.Fatalf("got %d blocks, want 1", len(out))
	}
	if out[0].Kind != "customWidget" || out[0].Text != "opaque content" {
		t.Errorf("unknown tag read wrong: %+v", out[0])
	}
}

func TestBlocksNestedGroups(t *testing.T) {
	m := NewMapper()
	child := yjs.NewElement("blockContainer", map[string]string{"id": "c"}, []yjs.Node{
		yjs.NewElement("paragraph", nil, []yjs.Node{&yjs.Text{Content: "nested"}}),
	})
	root := &yjs.Fragment{Children: []yjs.Node{
		yjs.NewElement("blockGroup", nil, []yjs.Node{
			yjs.NewElement("blockContainer", map[string]string{"id": "p"}, []yjs.Node{
				yjs.NewElement("paragraph", nil, []yjs.Node{&yjs.Text{Content: "outer"}}),
				yjs.NewElement("blockGroup", nil, []yjs.Node{child}),
			}),
		}),
	}}

	var texts []string
	for b := range m.Blocks(root) {
		texts = append(texts, b.Text)
	}
	if !slices.Equal(texts, []string{"outer", "nested"}) {
		t.Errorf("got %v, want [outer nested]", texts)
	}
}

func TestBlocksNilRoot(t *testing.T) {
	m := NewMapper()
	if got := treeBlocks(t, m, nil); len(got) != 0 {
		t.Errorf("nil root yielded %v", got)
	}
}

func TestReplicaSnapshotRoundTrip(t *testing.T) {
	m := NewMapper()
	in := []LogicalBlock{
		Heading(2, "Status"),
		Paragraph("All systems nominal."),
	}

	replica, err := m.Replica(in)
	if err != nil {
		t.Fatalf("Replica: %v", err)
	}
	loaded, err := yjs.Load(replica.Snapshot())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	out := treeBlocks(t, m, loaded.Root(yjs.StoreKey))
	if len(out) != 2 {
		t.Fatalf("got %d blocks, want 2", len(out))
	}
	if out[0].Kind != KindHeading || out[0].Attrs["level"] != "2" || out[0].Text != "Status" {
		t.Errorf("heading wrong after round trip: %+v", out[0])
	}
	if out[1].Text != "All systems nominal." {
		t.Errorf("paragraph wrong after round trip: %+v", out[1])
	}
}
