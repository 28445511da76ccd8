// ABOUTME: Bidirectional mapping between document trees and logical blocks.
// ABOUTME: Best-effort reading of any tree, strict construction on writes.

package blocknote

import (
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/harper/docs-mcp/internal/yjs"
)

// UnsupportedKindError reports a logical block kind the write path cannot
// encode into the BlockNote schema.
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported block kind %q", e.Kind)
}

// DefaultStyles returns the style attributes every structural block
// carries when the caller supplies none. The editor's schema validation
// rejects blocks with absent style attributes, so writes always fill them.
func DefaultStyles() map[string]string {
	return map[string]string{
		"textColor":       "default",
		"textAlignment":   "left",
		"backgroundColor": "default",
	}
}

func defaultKinds() map[string]bool {
	return map[string]bool{
		KindParagraph:        true,
		KindHeading:          true,
		KindBulletListItem:   true,
		KindNumberedListItem: true,
		KindCheckListItem:    true,
		KindQuote:            true,
	}
}

// Mapper converts between the generic element/attribute/text tree and
// logical blocks. The defaults table is per-instance so tests can override
// it without touching shared state.
type Mapper struct {
	styles map[string]string
	kinds  map[string]bool
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithStyles overrides the default style attribute table.
func WithStyles(styles map[string]string) Option {
	return func(m *Mapper) {
		m.styles = styles
	}
}

// WithKinds overrides the set of kinds accepted on the write path.
func WithKinds(kinds ...string) Option {
	return func(m *Mapper) {
		m.kinds = map[string]bool{}
		for _, k := range kinds {
			m.kinds[k] = true
		}
	}
}

// NewMapper creates a mapper with the stock BlockNote defaults.
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{styles: DefaultStyles(), kinds: defaultKinds()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Blocks walks the tree rooted at root and yields one LogicalBlock per
// blockContainer, in document order. The sequence is lazy and restartable.
// Containers with no element child are skipped; unrecognized tags are read
// as opaque blocks with their text intact. A nil root yields nothing.
func (m *Mapper) Blocks(root yjs.Node) iter.Seq[LogicalBlock] {
	return func(yield func(LogicalBlock) bool) {
		if root == nil {
			return
		}
		walkBlocks(root, yield)
	}
}

func walkBlocks(n yjs.Node, yield func(LogicalBlock) bool) bool {
	switch x := n.(type) {
	case *yjs.Fragment:
		for _, c := range x.Children {
			if !walkBlocks(c, yield) {
				return false
			}
		}
	case *yjs.Element:
		if x.Tag == tagBlockContainer {
			if block, ok := containerBlock(x); ok {
				if !yield(block) {
					return false
				}
			}
			// Nested blocks live in a blockGroup next to the
			// structural child.
			for _, c := range x.Children {
				if e, ok := c.(*yjs.Element); ok && e.Tag == tagBlockGroup {
					if !walkBlocks(e, yield) {
						return false
					}
				}
			}
			return true
		}
		for _, c := range x.Children {
			if !walkBlocks(c, yield) {
				return false
			}
		}
	}
	return true
}

// containerBlock extracts the first structural child of a blockContainer.
func containerBlock(container *yjs.Element) (LogicalBlock, bool) {
	for _, c := range container.Children {
		e, ok := c.(*yjs.Element)
		if !ok || e.Tag == tagBlockGroup {
			continue
		}
		attrs := make(map[string]string, len(e.Attrs))
		for k, v := range e.Attrs {
			attrs[k] = v
		}
		return LogicalBlock{Kind: e.Tag, Attrs: attrs, Text: subtreeText(e)}, true
	}
	return LogicalBlock{}, false
}

func subtreeText(n yjs.Node) string {
	switch x := n.(type) {
	case *yjs.Text:
		return x.Content
	case *yjs.Element:
		var s string
		for _, c := range x.Children {
			s += subtreeText(c)
		}
		return s
	case *yjs.Fragment:
		var s string
		for _, c := range x.Children {
			s += subtreeText(c)
		}
		return s
	}
	return ""
}

// Tree builds the canonical document tree for a block sequence:
// Fragment -> blockGroup -> blockContainer(id) -> block(styles) -> text.
// Identifiers are freshly allocated on every call. An empty sequence
// produces a single empty paragraph; the editor requires at least one
// block.
func (m *Mapper) Tree(blocks []LogicalBlock) (*yjs.Fragment, error) {
	if len(blocks) == 0 {
		blocks = []LogicalBlock{Paragraph("")}
	}
	containers := make([]yjs.Node, 0, len(blocks))
	for _, b := range blocks {
		if !m.kinds[b.Kind] {
			return nil, &UnsupportedKindError{Kind: b.Kind}
		}
		attrs := make(map[string]string, len(m.styles)+len(b.Attrs))
		for k, v := range m.styles {
			attrs[k] = v
		}
		for k, v := range b.Attrs {
			attrs[k] = v
		}
		var children []yjs.Node
		if b.Text != "" {
			children = []yjs.Node{&yjs.Text{Content: b.Text}}
		} else {
			children = []yjs.Node{&yjs.Text{Content: ""}}
		}
		block := yjs.NewElement(b.Kind, attrs, children)
		container := yjs.NewElement(tagBlockContainer,
			map[string]string{"id": uuid.NewString()},
			[]yjs.Node{block})
		containers = append(containers, container)
	}
	group := yjs.NewElement(tagBlockGroup, nil, containers)
	return &yjs.Fragment{Children: []yjs.Node{group}}, nil
}

// Replica wraps Tree and installs the result under the document-store
// root of a fresh replica, ready for snapshotting.
func (m *Mapper) Replica(blocks []LogicalBlock) (*yjs.Replica, error) {
	tree, err := m.Tree(blocks)
	if err != nil {
		return nil, err
	}
	r := yjs.NewReplica()
	r.SetRoot(yjs.StoreKey, tree)
	return r, nil
}
