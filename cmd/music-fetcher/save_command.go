package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/justestif/music-fetcher/internal/library"
)

func newSaveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "save <index>",
		Short: "Save a track from the last search results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: must be a number", args[0])
			}

			svc, err := ctx.service()
			if err != nil {
				return err
			}

			res, err := svc.Save(cmd.Context(), index)
			switch {
			case errors.Is(err, library.ErrNoCachedTracks):
				newStatusWriter(cmd.ErrOrStderr()).fail("No tracks available to save. Run a search command first.")
				return nil
			case errors.Is(err, library.ErrTrackNotFound):
				newStatusWriter(cmd.ErrOrStderr()).fail("Track at index %d not found.", index)
				return nil
			case err != nil:
				return err
			}

			status := newStatusWriter(cmd.OutOrStdout())
			if res.AlreadySaved {
				status.warn("Track \"%s\" is already saved.", res.Track.Name)
				return nil
			}
			status.ok("Track saved: %s", res.Track.Name)
			return nil
		},
	}
}
