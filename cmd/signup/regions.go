package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-signup/components/regions"
)

func newRegionsCmd(a *app) *cobra.Command {
	var (
		search string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "regions [country]",
		Short: "List countries, or the regions of one country",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				names := ds.Countries()
				if search != "" {
					names = regions.Search(names, search, limit, regions.NewOptions())
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			entry, ok := ds.Lookup(args[0])
			if !ok {
				return unknownCountry(ds, args[0])
			}
			fmt.Fprintf(out, "%s (%s)\n", entry.CountryName, regions.RegionLabel(entry.CountryName))
			for _, name := range ds.RegionNames(entry.CountryName) {
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "fuzzy filter for country names")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of search results")
	return cmd
}
