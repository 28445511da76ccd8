// ABOUTME: Whoami command showing the authenticated account.
// ABOUTME: Useful for checking token validity and the target instance.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := client.GetCurrentUser(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get current user: %w", err)
		}

		name := user.FullName
		if name == "" {
			name = user.ShortName
		}
		if name != "" {
			fmt.Printf("%s <%s>\n", name, user.Email)
		} else {
			fmt.Println(user.Email)
		}
		fmt.Printf("instance: %s\n", cfg.BaseURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
