// ABOUTME: Tests for the plain text and markdown importers.
// ABOUTME: Paragraph splitting, soft breaks, headings, degraded blocks.

package blocknote

import (
	"testing"
)

func TestFromPlainTextParagraphs(t *testing.T) {
	blocks := FromPlainText("Hello\n\nWorld")

	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Text != "Hello" || blocks[1].Text != "World" {
		t.Errorf("got %q and %q", blocks[0].Text, blocks[1].Text)
	}
}

func TestFromPlainTextSoftBreaks(t *testing.T) {
	blocks := FromPlainText("line one\nline two\n\nnext")

	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Text != "line one\nline two" {
		t.Errorf("soft break lost: %q", blocks[0].Text)
	}
}

func TestFromPlainTextCRLF(t *testing.T) {
	blocks := FromPlainText("a\r\n\r\nb")

	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Text != "a" || blocks[1].Text != "b" {
		t.Errorf("got %q and %q", blocks[0].Text, blocks[1].Text)
	}
}

func TestFromPlainTextEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\n"} {
		blocks := FromPlainText(in)
		if len(blocks) != 1 {
			t.Fatalf("FromPlainText(%q): got %d blocks, want 1", in, len(blocks))
		}
		if blocks[0].Kind != KindParagraph || blocks[0].Text != "" {
			t.Errorf("FromPlainText(%q): got %+v, want one empty paragraph", in, blocks[0])
		}
	}
}

func TestFromMarkdownHeadings(t *testing.T) {
	blocks := FromMarkdown("# Title\n\nBody text.\n\n## Section\n\nMore text.")

	if len(blocks) != 4 {
		t.Fatalf("got %d blocks, want 4: %+v", len(blocks), blocks)
	}
	if blocks[0].Kind != KindHeading || blocks[0].Attrs["level"] != "1" || blocks[0].Text != "Title" {
		t.Errorf("first block: %+v", blocks[0])
	}
	if blocks[1].Kind != KindParagraph || blocks[1].Text != "Body text." {
		t.Errorf("second block: %+v", blocks[1])
	}
	if blocks[2].Kind != KindHeading || blocks[2].Attrs["level"] != "2" {
		t.Errorf("third block: %+v", blocks[2])
	}
}

func TestFromMarkdownListDegradesToParagraph(t *testing.T) {
	blocks := FromMarkdown("- alpha\n- beta")

	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1: %+v", len(blocks), blocks)
	}
	if blocks[0].Kind != KindParagraph {
		t.Errorf("got kind %q, want paragraph", blocks[0].Kind)
	}
	if blocks[0].Text != "alpha\nbeta" {
		t.Errorf("got %q, want items joined by soft breaks", blocks[0].Text)
	}
}

func TestFromMarkdownCodeBlockKeepsLines(t *testing.T) {
	blocks := FromMarkdown("```\nfirst\nsecond\n```")

	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1: %+v", len(blocks), blocks)
	}
	if blocks[0].Text != "first\nsecond" {
		t.Errorf("got %q, want code lines preserved", blocks[0].Text)
	}
}

func TestFromMarkdownEmpty(t *testing.T) {
	blocks := FromMarkdown("")
	if len(blocks) != 1 || blocks[0].Kind != KindParagraph || blocks[0].Text != "" {
		t.Errorf("got %+v, want one empty paragraph", blocks)
	}
}
