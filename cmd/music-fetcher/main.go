// Command music-fetcher searches the Spotify catalog and keeps a small library of
// saved tracks in a relational database.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand(newCommandContext()).ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			newStatusWriter(os.Stderr).fail("Error: %v", err)
		}
		os.Exit(1)
	}
}
