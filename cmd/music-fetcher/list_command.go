package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListSavedCommand(ctx *commandContext) *cobra.Command {
	var genre string

	cmd := &cobra.Command{
		Use:   "list-saved",
		Short: "List saved tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}

			items, err := svc.ListSaved(cmd.Context(), genre)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			status := newStatusWriter(out)
			if len(items) == 0 {
				status.warn("No saved tracks found.")
				return nil
			}
			fmt.Fprintln(out)
			status.header("Saved Tracks:")
			fmt.Fprintln(out, renderSavedItems(items, isTerminal(out)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&genre, "genre", "g", "", "Filter by genre (case-insensitive substring)")

	return cmd
}
