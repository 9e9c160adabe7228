package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitDBCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the saved tracks table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			if err := svc.InitDB(cmd.Context()); err != nil {
				return fmt.Errorf("initializing database: %w", err)
			}
			newStatusWriter(cmd.OutOrStdout()).ok("Database ready.")
			return nil
		},
	}
}
