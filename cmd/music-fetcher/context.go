package main

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/justestif/music-fetcher/internal/cache"
	"github.com/justestif/music-fetcher/internal/config"
	"github.com/justestif/music-fetcher/internal/db"
	"github.com/justestif/music-fetcher/internal/lastfm"
	"github.com/justestif/music-fetcher/internal/library"
)

type commandContext struct {
	configFlag string
	verbose    bool

	logger *log.Logger

	configOnce sync.Once
	config     *config.Config
	configErr  error

	// Extra options appended when building the service; used by tests to point the
	// catalog client at a local server and to replace the browser launcher.
	searcherOpts []library.SearcherOption
	serviceOpts  []library.Option
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

// setupLogger creates the logger for this invocation. Debug output is enabled with
// --verbose and tagged with a run id so interleaved invocations can be told apart.
func (c *commandContext) setupLogger(w io.Writer) {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "music-fetcher",
	})
	if c.verbose {
		logger.SetLevel(log.DebugLevel)
		logger = logger.With("run", uuid.NewString())
	}
	c.logger = logger
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger.Debug("loaded config", "driver", cfg.Database.Driver, "cache", cfg.CachePath)
	})
	return c.config, c.configErr
}

func (c *commandContext) service() (*library.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	opts := []library.Option{library.WithLogger(c.logger)}
	if cfg.LastFM.APIKey != "" {
		lfCfg, err := lastfm.NewConfig(cfg.LastFM.APIKey)
		if err != nil {
			return nil, err
		}
		opts = append(opts, library.WithGenreTagger(lastfm.NewClient(lfCfg)))
	}
	opts = append(opts, c.serviceOpts...)

	openStore := func(ctx context.Context) (db.Store, error) {
		return db.Open(ctx, cfg.Database)
	}

	return library.New(
		library.NewSpotifySearcher(cfg, c.searcherOpts...),
		cache.New(cfg.CachePath),
		openStore,
		opts...,
	), nil
}
