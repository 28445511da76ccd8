// ABOUTME: Write command replacing a document's content.
// ABOUTME: Accepts text or markdown from a flag, a file, or stdin.

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harper/docs-mcp/internal/api"
	"github.com/harper/docs-mcp/internal/ui"
)

var writeCmd = &cobra.Command{
	Use:   "write <document-id>",
	Short: "Replace a document's content",
	Long:  `Replace a document's content with plain text or markdown. Connected editors receive the update live.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid document id %q: %w", args[0], err)
		}
		format, _ := cmd.Flags().GetString("format")

		content, err := readContentFlags(cmd)
		if err != nil {
			return err
		}

		doc, source, err := client.UpdateContent(cmd.Context(), id, content, format)
		if err != nil {
			return fmt.Errorf("failed to update content: %w", err)
		}

		if source == api.ConversionLocal {
			logger.Warn("markdown converted locally; server-side converter was unreachable")
		}
		fmt.Println(ui.Success(fmt.Sprintf("Updated content of %s (%s)", doc.ID, doc.Title)))
		return nil
	},
}

func init() {
	writeCmd.Flags().String("content", "", "New content")
	writeCmd.Flags().String("file", "", "Read content from a file (- for stdin)")
	writeCmd.Flags().String("format", "text", "Content format: text or markdown")
	rootCmd.AddCommand(writeCmd)
}
