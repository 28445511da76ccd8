// ABOUTME: Delete and restore commands for documents.
// ABOUTME: Deletes are soft; restore brings a document back from the trash.

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harper/docs-mcp/internal/ui"
)

var rmCmd = &cobra.Command{
	Use:   "rm <document-id>",
	Short: "Delete a document",
	Long:  `Move a document to the trashbin. It stays restorable for the instance's retention period.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid document id %q: %w", args[0], err)
		}

		if err := client.DeleteDocument(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Moved %s to trashbin", id)))
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <document-id>",
	Short: "Restore a document from the trashbin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid document id %q: %w", args[0], err)
		}

		if err := client.RestoreDocument(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to restore document: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Restored %s", id)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(restoreCmd)
}
