/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/jfmyers9/toptags/internal/config"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var (
	logFile  string
	logLevel string
	cacheDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "toptags",
	Short: "Weighted tag profile of your Last.fm listening",
	Long: `toptags builds a tag profile from your Last.fm listening history.

It pages through your top artists, looks up each artist's top tags for
the last 12 months, and weights every tag by the play counts of the
artists carrying it.

Results are cached in artists.json and tags.json. Delete them to fetch
again. Running toptags without a subcommand is the same as 'toptags collect'.

Requires LASTFM_USER and LASTFM_API_KEY (environment, .env file, or
~/.config/toptags/config.yaml).`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage: true,
	RunE:         runCollect,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "Directory for cache files (overrides config)")
}

// loadConfig loads configuration and applies persistent flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cacheDir != "" {
		cfg.CacheDir = cacheDir
	}

	return cfg, nil
}
