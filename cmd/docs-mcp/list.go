// ABOUTME: List command for displaying documents.
// ABOUTME: Supports favorites, creator and title filters, and the trashbin.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/docs-mcp/internal/models"
	"github.com/harper/docs-mcp/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Long:  `List documents accessible to the current user, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		favorites, _ := cmd.Flags().GetBool("favorites")
		mine, _ := cmd.Flags().GetBool("mine")
		title, _ := cmd.Flags().GetString("title")
		trash, _ := cmd.Flags().GetBool("trash")
		limit, _ := cmd.Flags().GetInt("limit")

		var (
			list *models.DocumentList
			err  error
		)
		switch {
		case trash:
			list, err = client.ListTrashbin(cmd.Context())
		case favorites:
			list, err = client.ListFavorites(cmd.Context())
		default:
			filters := &models.ListFilters{
				Title:    title,
				Ordering: "-updated_at",
				PageSize: limit,
			}
			if mine {
				t := true
				filters.IsCreatorMe = &t
			}
			list, err = client.ListDocuments(cmd.Context(), filters)
		}
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}

		if len(list.Results) == 0 {
			fmt.Println("No documents found.")
			return nil
		}

		for i := range list.Results {
			fmt.Print(ui.FormatDocumentListItem(&list.Results[i]))
		}
		if list.Count > len(list.Results) {
			fmt.Printf("  (%d of %d documents)\n", len(list.Results), list.Count)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("favorites", false, "Only favorite documents")
	listCmd.Flags().Bool("mine", false, "Only documents I created")
	listCmd.Flags().Bool("trash", false, "List the trashbin instead")
	listCmd.Flags().String("title", "", "Filter by title")
	listCmd.Flags().Int("limit", 20, "Max results")
	rootCmd.AddCommand(listCmd)
}
