package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"staysync/internal/domain"
)

func init() {
	rootCmd.AddCommand(newPopularCmd(), newSearchCmd(), newNearbyCmd(), newShowCmd())
}

func newPopularCmd() *cobra.Command {
	var limit int
	var force bool
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "List popular accommodations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accs, err := deps.catalog.Popular(cmd.Context(), limit, force)
			if err != nil {
				return err
			}
			printAccommodations(cmd, accs)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum results")
	cmd.Flags().BoolVar(&force, "refresh", false, "bypass the cache")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search accommodations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageRes, err := deps.catalog.Search(cmd.Context(), args[0], domain.ListQuery{Page: page, Limit: limit})
			if err != nil {
				return err
			}
			printAccommodations(cmd, pageRes.Results)
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d total)\n", pageRes.Page, pageRes.TotalPages, pageRes.TotalCount)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "result page")
	cmd.Flags().IntVar(&limit, "limit", 10, "results per page")
	return cmd
}

func newNearbyCmd() *cobra.Command {
	var lat, lon float64
	var distance int
	var force bool
	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List accommodations near a point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := deps.catalog.Nearby(cmd.Context(),
				domain.NearbyQuery{Latitude: lat, Longitude: lon, Distance: distance}, force)
			if err != nil {
				return err
			}
			printAccommodations(cmd, page.Results)
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	cmd.Flags().IntVar(&distance, "distance", 5000, "radius in meters")
	cmd.Flags().BoolVar(&force, "refresh", false, "bypass the cache and debounce")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func newShowCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "show <accommodation-id>",
		Short: "Show one accommodation with its rooms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := deps.catalog.Accommodation(cmd.Context(), args[0], force)
			if err != nil {
				return err
			}
			return printJSON(cmd, a)
		},
	}
	cmd.Flags().BoolVar(&force, "refresh", false, "bypass the cache")
	return cmd
}

func printAccommodations(cmd *cobra.Command, accs []domain.Accommodation) {
	for _, a := range accs {
		star := " "
		if deps.favorites.IsFavorited(a.ID) {
			star = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %-26s %-20s %s, %s\n", star, a.ID, a.Name, a.City, a.Country)
	}
}
