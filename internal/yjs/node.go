// ABOUTME: Immutable document tree produced and consumed by the update codec.
// ABOUTME: Fragment, Element and Text are value objects; edits build new nodes.

package yjs

import "sort"

// StoreKey is the shared root under which the Docs editor keeps the
// BlockNote block tree.
const StoreKey = "document-store"

// Node is one vertex of a materialized document tree. A node's shape is
// fixed at construction; changing it means building a new node.
type Node interface {
	isNode()
}

// Fragment is an ordered sequence of children with no tag and no
// attributes. Every root type materializes as a Fragment.
type Fragment struct {
	Children []Node
}

// Element is a tagged node with string attributes and ordered children.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Children []Node
}

// Text is a leaf text run.
type Text struct {
	Content string
}

func (*Fragment) isNode() {}
func (*Element) isNode()  {}
func (*Text) isNode()     {}

// NewElement copies attrs so the constructed node does not alias caller
// state.
func NewElement(tag string, attrs map[string]string, children []Node) *Element {
	cp := make(map[string]string, len(attrs))
	for k, v := range attrs {
		cp[k] = v
	}
	return &Element{Tag: tag, Attrs: cp, Children: children}
}

// AttrNames returns the attribute names of an element in sorted order.
// Attribute insertion order is not meaningful in the wire format.
func (e *Element) AttrNames() []string {
	names := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
