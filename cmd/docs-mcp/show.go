// ABOUTME: Show command for displaying a single document.
// ABOUTME: Extracts plain text from the CRDT content and renders it.

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harper/docs-mcp/internal/blocknote"
	"github.com/harper/docs-mcp/internal/ui"
	"github.com/harper/docs-mcp/internal/yjs"
)

var showCmd = &cobra.Command{
	Use:   "show <document-id>",
	Short: "Show a document",
	Long:  `Display a document's metadata and extracted text content.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid document id %q: %w", args[0], err)
		}

		doc, err := client.GetDocument(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}

		fmt.Print(ui.FormatDocumentHeader(doc))

		text := ""
		if doc.Content != "" {
			update, err := yjs.DecodeEnvelope(doc.Content)
			if err != nil {
				return fmt.Errorf("failed to decode content: %w", err)
			}
			replica, err := yjs.Load(update)
			if err != nil {
				return fmt.Errorf("failed to read content: %w", err)
			}
			text = blocknote.ExtractText(replica.Root(yjs.StoreKey))
		}

		rendered, _ := ui.FormatContent(text)
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
