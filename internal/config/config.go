// Package config loads music-fetcher settings from an optional TOML file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	appDirName     = "music-fetcher"
	configFileName = "config.toml"
	cacheFileName  = "last-fetched-tracks.json"
	sqliteFileName = "music_fetcher.db"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	// ErrMissingCredentials is returned when SPOTIFY_ID or SPOTIFY_SECRET is not set.
	ErrMissingCredentials = errors.New("missing SPOTIFY_ID or SPOTIFY_SECRET environment variable")

	// ErrUnknownDriver is returned when the configured database driver is not supported.
	ErrUnknownDriver = errors.New("unknown database driver")

	// ErrEmptyPath is returned when the sqlite driver has no database file path.
	ErrEmptyPath = errors.New("empty sqlite database path")
)

// Spotify holds catalog API settings.
type Spotify struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// LastFM holds the optional Last.fm settings used for genre lookups.
type LastFM struct {
	APIKey string `toml:"api_key"`
}

// Database holds relational store connection settings.
type Database struct {
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	Path     string `toml:"path"` // sqlite only

	portErr error // set when DB_PORT does not parse; reported by Validate
}

// Config is the complete music-fetcher configuration.
type Config struct {
	Spotify   Spotify  `toml:"spotify"`
	LastFM    LastFM   `toml:"lastfm"`
	Database  Database `toml:"database"`
	CachePath string   `toml:"cache_path"`
}

// Credentials are the client-credentials pair used to obtain a bearer token.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Default returns a Config populated with defaults. File paths are resolved by Load.
func Default() Config {
	return Config{
		Database: Database{
			Driver:   DriverPostgres,
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Name:     "music_fetcher",
		},
	}
}

// DefaultPath returns ~/.config/music-fetcher/config.toml (or the platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config dir: %w", err)
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

// Load builds the configuration from defaults, the TOML file at path and the
// environment, in that order of precedence (environment wins).
// An empty path means the default location, which may be absent.
// Database settings are checked later by Database.Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := loadFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	applyEnv(&cfg)
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	if err := cfg.resolvePaths(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Spotify.ClientID, "SPOTIFY_ID")
	setString(&cfg.Spotify.ClientSecret, "SPOTIFY_SECRET")
	setString(&cfg.LastFM.APIKey, "LASTFM_API_KEY")
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.Path, "DB_PATH")
	setString(&cfg.CachePath, "MUSIC_FETCHER_CACHE")

	if v := strings.TrimSpace(os.Getenv("DB_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			cfg.Database.portErr = fmt.Errorf("parsing DB_PORT %q: %w", v, err)
			return
		}
		cfg.Database.Port = port
	}
}

// setString overrides dst when the environment variable is set and non-empty.
func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func (c *Config) resolvePaths() error {
	if c.CachePath == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return fmt.Errorf("getting user cache dir: %w", err)
		}
		c.CachePath = filepath.Join(dir, appDirName, cacheFileName)
	}

	if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("getting user config dir: %w", err)
		}
		c.Database.Path = filepath.Join(dir, appDirName, sqliteFileName)
	}
	return nil
}

// Validate checks the database settings. It runs when a store is opened, so
// commands that never touch the database are not blocked by bad DB_* values.
func (d Database) Validate() error {
	if d.portErr != nil {
		return d.portErr
	}
	switch d.Driver {
	case DriverSQLite:
		if d.Path == "" {
			return ErrEmptyPath
		}
	case DriverPostgres:
		if d.Port <= 0 || d.Port > 65535 {
			return fmt.Errorf("database port %d out of range", d.Port)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, d.Driver)
	}
	return nil
}

// Credentials returns the Spotify client credentials.
// Returns ErrMissingCredentials if either value is empty.
func (c *Config) Credentials() (Credentials, error) {
	if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" {
		return Credentials{}, ErrMissingCredentials
	}
	return Credentials{
		ClientID:     c.Spotify.ClientID,
		ClientSecret: c.Spotify.ClientSecret,
	}, nil
}
