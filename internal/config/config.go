package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Directory holding artists.json, tags.json and the databases
	// Default: "."
	CacheDir string

	// Delay before each Last.fm request
	// Default: 1s
	Throttle time.Duration

	// Keep per-artist tag lookups in tags.db so an interrupted run resumes
	TagCache bool

	// Record each fresh ranking in history.db
	History bool

	// Last.fm API credentials
	LastFM LastFMConfig
}

// LastFMConfig holds Last.fm specific configuration
type LastFMConfig struct {
	User   string
	APIKey string
}

var (
	// ErrMissingUser is returned by Validate when no Last.fm user is configured.
	ErrMissingUser = errors.New("LASTFM_USER is not set")

	// ErrMissingAPIKey is returned by Validate when no API key is configured.
	ErrMissingAPIKey = errors.New("LASTFM_API_KEY is not set")
)

// Load reads configuration from file, .env and environment
func Load() (*Config, error) {
	return load(getConfigDir())
}

func load(configDir string) (*Config, error) {
	// A .env file in the working directory is optional
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetDefault("cache_dir", ".")
	v.SetDefault("throttle", "1s")
	v.SetDefault("tag_cache", false)
	v.SetDefault("history", true)

	// Read config file (optional - don't fail if missing)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.SetEnvPrefix("TOPTAGS")
	v.AutomaticEnv()

	// The plain LASTFM_* names are the documented ones; TOPTAGS_LASTFM_* also work
	_ = v.BindEnv("lastfm.user", "LASTFM_USER", "TOPTAGS_LASTFM_USER")
	_ = v.BindEnv("lastfm.api_key", "LASTFM_API_KEY", "TOPTAGS_LASTFM_API_KEY")

	cfg := &Config{
		CacheDir: v.GetString("cache_dir"),
		Throttle: v.GetDuration("throttle"),
		TagCache: v.GetBool("tag_cache"),
		History:  v.GetBool("history"),
		LastFM: LastFMConfig{
			User:   v.GetString("lastfm.user"),
			APIKey: v.GetString("lastfm.api_key"),
		},
	}

	return cfg, nil
}

// Validate reports missing required settings
func (c *Config) Validate() error {
	if c.LastFM.User == "" {
		return ErrMissingUser
	}
	if c.LastFM.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Path returns name resolved inside the cache directory
func (c *Config) Path(name string) string {
	return filepath.Join(c.CacheDir, name)
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(homeDir, ".config", "toptags")
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}
