package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	fav := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite accommodations",
	}
	fav.AddCommand(newFavListCmd(), newFavAddCmd(), newFavRemoveCmd())
	rootCmd.AddCommand(fav)
}

func newFavListCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List favorited accommodation ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.favorites.Fetch(cmd.Context(), force); err != nil {
				return err
			}
			for _, id := range deps.favorites.IDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "refresh", false, "bypass the cache")
	return cmd
}

func newFavAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <accommodation-id>",
		Short: "Favorite an accommodation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.favorites.Add(cmd.Context(), args[0])
		},
	}
}

func newFavRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <accommodation-id>",
		Short: "Unfavorite an accommodation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.favorites.Remove(cmd.Context(), args[0])
		},
	}
}
