package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jfmyers9/toptags/internal/history"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded tag rankings",
	Long: `List the tag rankings recorded by previous collect runs.

Every run that computes a fresh tags.json is recorded in history.db.
With --tag, print how a single tag's weight and rank changed over time.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringP("tag", "t", "", "Show the history of a single tag")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of snapshots to list (0=all)")
	historyCmd.Flags().Duration("prune", 0, "Delete snapshots older than this before listing (e.g. 2160h)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.Path(historyFile))
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if prune, _ := cmd.Flags().GetDuration("prune"); prune > 0 {
		deleted, err := store.Prune(ctx, prune)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Pruned %d snapshots\n", deleted)
	}

	if tag, _ := cmd.Flags().GetString("tag"); tag != "" {
		points, err := store.TagHistory(ctx, tag)
		if err != nil {
			return err
		}
		renderTagHistory(out, tag, points)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	snapshots, err := store.Snapshots(ctx, limit)
	if err != nil {
		return err
	}
	renderSnapshots(out, snapshots)
	return nil
}

func renderSnapshots(w io.Writer, snapshots []history.Snapshot) {
	if len(snapshots) == 0 {
		fmt.Fprintln(w, "No snapshots recorded.")
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-20s  %s  %6s  %s", "WHEN", padToWidth("USER", 16), "TAGS", "PLAYS")))
	for _, s := range snapshots {
		fmt.Fprintf(w, "%-20s  %s  %6d  %s\n",
			s.CreatedAt.Format("2006-01-02 15:04"),
			padToWidth(s.User, 16),
			s.TagCount,
			humanize.Comma(s.TotalPlay),
		)
	}
}

func renderTagHistory(w io.Writer, tag string, points []history.TagPoint) {
	if len(points) == 0 {
		fmt.Fprintf(w, "No history for tag %q.\n", tag)
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-20s  %6s  %s", "WHEN", "RANK", "PLAYS")))
	for _, p := range points {
		fmt.Fprintf(w, "%-20s  %6d  %s\n",
			p.CreatedAt.Format("2006-01-02 15:04"),
			p.Rank,
			humanize.Comma(p.PlayCount),
		)
	}
}
