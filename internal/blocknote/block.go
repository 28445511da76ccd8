// ABOUTME: LogicalBlock, the format-agnostic unit of document content.
// ABOUTME: Decouples text/markdown import from the BlockNote tree shape.

package blocknote

import "strconv"

// Block kinds the write path knows how to encode. These are the BlockNote
// element tag names.
const (
	KindParagraph        = "paragraph"
	KindHeading          = "heading"
	KindBulletListItem   = "bulletListItem"
	KindNumberedListItem = "numberedListItem"
	KindCheckListItem    = "checkListItem"
	KindQuote            = "quote"
)

// Structural tags of the BlockNote tree that are not blocks themselves.
const (
	tagBlockGroup     = "blockGroup"
	tagBlockContainer = "blockContainer"
)

// LogicalBlock is one block of content: a kind, optional attributes and
// the flattened text of the block.
type LogicalBlock struct {
	Kind  string
	Attrs map[string]string
	Text  string
}

// Paragraph is shorthand for a plain paragraph block.
func Paragraph(text string) LogicalBlock {
	return LogicalBlock{Kind: KindParagraph, Text: text}
}

// Heading builds a heading block at the given level (1-6).
func Heading(level int, text string) LogicalBlock {
	return LogicalBlock{
		Kind:  KindHeading,
		Attrs: map[string]string{"level": strconv.Itoa(level)},
		Text:  text,
	}
}
