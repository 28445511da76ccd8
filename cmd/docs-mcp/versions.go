// ABOUTME: Versions command for document history.
// ABOUTME: Lists versions and shows a single version's extracted text.

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harper/docs-mcp/internal/ui"
)

var versionsCmd = &cobra.Command{
	Use:   "versions <document-id> [version-id]",
	Short: "Show a document's version history",
	Long:  `List a document's versions, or show one version's text when a version ID is given.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid document id %q: %w", args[0], err)
		}

		if len(args) == 2 {
			text, err := client.VersionText(cmd.Context(), id, args[1])
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			rendered, _ := ui.FormatContent(text)
			fmt.Print(rendered)
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		list, err := client.ListVersions(cmd.Context(), id, limit, "")
		if err != nil {
			return fmt.Errorf("failed to list versions: %w", err)
		}

		if len(list.Versions) == 0 {
			fmt.Println("No versions found.")
			return nil
		}
		for i := range list.Versions {
			fmt.Print(ui.FormatVersionListItem(&list.Versions[i]))
		}
		if list.IsTruncated {
			fmt.Printf("  (more versions after %s)\n", list.NextVersionIDMarker)
		}
		return nil
	},
}

func init() {
	versionsCmd.Flags().Int("limit", 20, "Max versions")
	rootCmd.AddCommand(versionsCmd)
}
