// ABOUTME: Converts plain text and markdown into logical block sequences.
// ABOUTME: Markdown fallback is deliberately minimal: headings + paragraphs.

package blocknote

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FromPlainText splits text into paragraph blocks on blank lines. Single
// newlines inside a paragraph are soft breaks and stay in the text run as
// a literal "\n". Empty input yields exactly one empty paragraph block:
// the editor schema requires at least one block, so an empty document is a
// policy, not an error.
func FromPlainText(input string) []LogicalBlock {
	normalized := strings.ReplaceAll(input, "\r\n", "\n")
	var blocks []LogicalBlock
	var lines []string
	flush := func() {
		if len(lines) > 0 {
			blocks = append(blocks, Paragraph(strings.Join(lines, "\n")))
			lines = nil
		}
	}
	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			lines = append(lines, line)
		}
	}
	flush()
	if len(blocks) == 0 {
		blocks = []LogicalBlock{Paragraph("")}
	}
	return blocks
}

// FromMarkdown parses block-oriented markdown into logical blocks. Only
// ATX headings and paragraphs are mapped structurally; any other block
// element degrades to a paragraph carrying its text. Full-fidelity
// conversion (lists, tables, inline formatting) belongs to the Docs
// conversion endpoint; this is the fallback when it is unreachable.
func FromMarkdown(markdown string) []LogicalBlock {
	source := []byte(markdown)
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source))

	var blocks []LogicalBlock
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch x := n.(type) {
		case *ast.Heading:
			blocks = append(blocks, LogicalBlock{
				Kind:  KindHeading,
				Attrs: map[string]string{"level": strconv.Itoa(x.Level)},
				Text:  inlineText(x, source),
			})
		default:
			t := blockText(n, source)
			if strings.TrimSpace(t) == "" {
				continue
			}
			blocks = append(blocks, Paragraph(t))
		}
	}
	if len(blocks) == 0 {
		blocks = []LogicalBlock{Paragraph("")}
	}
	return blocks
}

// inlineText flattens the inline children of a node, preserving soft line
// breaks as "\n".
func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteString("\n")
			}
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// blockText flattens any block node (paragraphs, list items, quotes) into
// one text run, joining inner blocks with soft breaks.
func blockText(n ast.Node, source []byte) string {
	var parts []string
	switch n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return inlineText(n, source)
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, source); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		if t := inlineText(n, source); t != "" {
			return t
		}
		return rawLines(n, source)
	}
	return strings.Join(parts, "\n")
}

// rawLines recovers the source lines of leaf blocks without inline
// children, such as fenced code blocks.
func rawLines(n ast.Node, source []byte) string {
	lines := n.Lines()
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimRight(sb.String(), "\n")
}
