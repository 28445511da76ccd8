// ABOUTME: Flattens a document tree into plain text.
// ABOUTME: One line per block; no separators between runs inside a block.

package blocknote

import (
	"strings"

	"github.com/harper/docs-mcp/internal/yjs"
)

// ExtractText renders a document tree as plain text: text runs concatenate
// in document order and successive blockContainer elements are separated
// by a single line break. Tolerates trees that do not follow the canonical
// shape; a nil root is the empty string.
func ExtractText(root yjs.Node) string {
	if root == nil {
		return ""
	}
	var segs []string
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			segs = append(segs, sb.String())
			sb.Reset()
		}
	}
	var walk func(n yjs.Node)
	walk = func(n yjs.Node) {
		switch x := n.(type) {
		case *yjs.Text:
			sb.WriteString(x.Content)
		case *yjs.Fragment:
			for _, c := range x.Children {
				walk(c)
			}
		case *yjs.Element:
			if x.Tag == tagBlockContainer {
				flush()
			}
			for _, c := range x.Children {
				walk(c)
			}
			if x.Tag == tagBlockContainer {
				flush()
			}
		}
	}
	walk(root)
	flush()
	return strings.Join(segs, "\n")
}
