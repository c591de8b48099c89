package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jfmyers9/toptags/internal/cache"
	"github.com/jfmyers9/toptags/internal/collector"
	"github.com/jfmyers9/toptags/internal/history"
	"github.com/spf13/cobra"
)

const (
	tagCacheFile = "tags.db"
	historyFile  = "history.db"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Fetch top artists and aggregate their tags",
	Long: `Fetch your top artists and aggregate their top tags.

Steps:
  1. Load artists.json, or page through user.getTopArtists and write it
  2. Load tags.json, or fetch every artist's top tags and write it

A one second pause is inserted between requests (see 'throttle' in the
config). Artists whose tags cannot be fetched are reported and skipped.

With --tag-cache, each artist's tags are also kept in tags.db so an
interrupted run picks up where it stopped.`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)

	for _, c := range []*cobra.Command{rootCmd, collectCmd} {
		c.Flags().Bool("tag-cache", false, "Keep per-artist tags in tags.db (overrides config)")
		c.Flags().Bool("history", true, "Record fresh rankings in history.db (overrides config)")
	}
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("tag-cache") {
		cfg.TagCache, _ = cmd.Flags().GetBool("tag-cache")
	}
	if cmd.Flags().Changed("history") {
		cfg.History, _ = cmd.Flags().GetBool("history")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog := setupLogger(logFile, logLevel)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	client, err := collector.NewClient(cfg.LastFM.APIKey, logger)
	if err != nil {
		return err
	}

	var opts []collector.Option

	if cfg.TagCache {
		tc, err := cache.OpenTagCache(cfg.Path(tagCacheFile))
		if err != nil {
			return fmt.Errorf("failed to open tag cache: %w", err)
		}
		defer tc.Close()

		logger.Info().Int("artists", tc.Len()).Msg("Using tag cache")
		opts = append(opts, collector.WithTagCache(tc))
	}

	if cfg.History {
		store, err := history.Open(cfg.Path(historyFile))
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer store.Close()

		opts = append(opts, collector.WithRecorder(store))
	}

	c := collector.New(collector.Config{
		User:     cfg.LastFM.User,
		CacheDir: cfg.CacheDir,
		Throttle: cfg.Throttle,
	}, client, logger, opts...)

	res, err := c.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "artists: %d\n", len(res.Artists))
	fmt.Fprintf(out, "tags: %d\n", len(res.Tags))
	for _, name := range res.Failed {
		fmt.Fprintf(out, "Could not get top tags for artist: %s\n", name)
	}

	return nil
}
