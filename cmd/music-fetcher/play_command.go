package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/justestif/music-fetcher/internal/db"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "play <id>",
		Short: "Open a saved track in Spotify",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid track ID %q: must be a number", args[0])
			}

			svc, err := ctx.service()
			if err != nil {
				return err
			}

			res, err := svc.Play(cmd.Context(), id)
			if errors.Is(err, db.ErrNotFound) {
				newStatusWriter(cmd.ErrOrStderr()).fail("Track with ID %d not found.", id)
				return nil
			}
			if err != nil {
				return fmt.Errorf("opening track: %w", err)
			}

			status := newStatusWriter(cmd.OutOrStdout())
			status.ok("Track URL: %s", res.URL)
			if res.OpenErr != nil {
				ctx.logger.Debug("browser launch failed", "err", res.OpenErr)
				status.warn("Could not open browser. Please visit: %s", res.URL)
				return nil
			}
			status.ok("Opening track in Spotify...")
			return nil
		},
	}
}
