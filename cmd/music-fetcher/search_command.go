package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justestif/music-fetcher/internal/spotify"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var params spotify.SearchParams

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search for music by query and optional genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}

			params.Query = args[0]
			res, err := svc.Search(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("searching music: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(res.Tracks) == 0 {
				newStatusWriter(out).warn("No tracks found.")
				return nil
			}
			fmt.Fprintln(out, renderTracks(res.Tracks, isTerminal(out)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&params.Type, "type", "t", spotify.DefaultSearchType, "Type to search (comma-separated, must include track)")
	cmd.Flags().StringVarP(&params.Genre, "genre", "g", "", "Genre to filter by (e.g., pop, rock)")
	cmd.Flags().IntVarP(&params.Limit, "limit", "l", spotify.DefaultLimit, "Number of results to return (1-50)")

	return cmd
}
