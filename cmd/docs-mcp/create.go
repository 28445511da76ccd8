// ABOUTME: Create command for new documents.
// ABOUTME: Initial content comes from a flag, a file, or stdin.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harper/docs-mcp/internal/api"
	"github.com/harper/docs-mcp/internal/ui"
)

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a document",
	Long:  `Create a new document, optionally with initial content and a parent.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]
		format, _ := cmd.Flags().GetString("format")
		parent, _ := cmd.Flags().GetString("parent")

		content, err := readContentFlags(cmd)
		if err != nil {
			return err
		}

		var parentID *uuid.UUID
		if parent != "" {
			id, err := uuid.Parse(parent)
			if err != nil {
				return fmt.Errorf("invalid parent id %q: %w", parent, err)
			}
			parentID = &id
		}

		doc, source, err := client.CreateDocumentWithText(cmd.Context(), title, content, format, parentID)
		if err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}

		if source == api.ConversionLocal {
			logger.Warn("markdown converted locally; server-side converter was unreachable")
		}
		fmt.Println(ui.Success(fmt.Sprintf("Created document %s (%s)", doc.ID, doc.Title)))
		return nil
	},
}

// readContentFlags resolves --content, --file and stdin ("-").
func readContentFlags(cmd *cobra.Command) (string, error) {
	content, _ := cmd.Flags().GetString("content")
	file, _ := cmd.Flags().GetString("file")

	if content != "" && file != "" {
		return "", fmt.Errorf("--content and --file are mutually exclusive")
	}
	if file == "" {
		return content, nil
	}
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	return string(data), nil
}

func init() {
	createCmd.Flags().String("content", "", "Initial content")
	createCmd.Flags().String("file", "", "Read initial content from a file (- for stdin)")
	createCmd.Flags().String("format", "text", "Content format: text or markdown")
	createCmd.Flags().String("parent", "", "Parent document ID (creates a child)")
	rootCmd.AddCommand(createCmd)
}
