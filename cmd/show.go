package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/jfmyers9/toptags/internal/cache"
	"github.com/jfmyers9/toptags/internal/collector"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cached tag ranking",
	Long: `Print the tag ranking stored in tags.json, heaviest first.

Run 'toptags collect' first to build it. No network requests are made.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntP("limit", "n", 25, "Number of tags to print (0=all)")
	showCmd.Flags().StringP("match", "m", "", "Only tags fuzzily matching this text")
	showCmd.Flags().IntP("width", "w", 30, "Width of the tag name column")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tags, err := cache.Load[[]collector.TopTag](cfg.Path(collector.TagsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no tags cached in %s yet, run 'toptags collect' first", cfg.CacheDir)
		}
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	match, _ := cmd.Flags().GetString("match")
	width, _ := cmd.Flags().GetInt("width")

	renderTags(cmd.OutOrStdout(), selectTags(tags, match, limit), width)
	return nil
}

// selectTags returns tags heaviest first, filtered by a fuzzy match on the
// name and cut to limit entries.
func selectTags(tags []collector.TopTag, match string, limit int) []collector.TopTag {
	selected := make([]collector.TopTag, 0, len(tags))
	for _, tag := range tags {
		if match == "" || fuzzy.MatchFold(match, tag.Name) {
			selected = append(selected, tag)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].PlayCount != selected[j].PlayCount {
			return selected[i].PlayCount > selected[j].PlayCount
		}
		return selected[i].Name < selected[j].Name
	})

	if limit > 0 && len(selected) > limit {
		selected = selected[:limit]
	}

	return selected
}

// renderTags writes a ranked table of tags.
func renderTags(w io.Writer, tags []collector.TopTag, width int) {
	if len(tags) == 0 {
		fmt.Fprintln(w, "No tags.")
		return
	}

	header := fmt.Sprintf("%4s  %s  %s", "#", padToWidth("TAG", width), "PLAYS")
	fmt.Fprintln(w, headerStyle.Render(header))

	for i, tag := range tags {
		fmt.Fprintf(w, "%4d  %s  %s\n", i+1, padToWidth(tag.Name, width), humanize.Comma(int64(tag.PlayCount)))
	}
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		truncated := runewidth.Truncate(text, width-ellipsisWidth, "") + ellipsis

		// Wide runes can leave the result a column short
		if resultWidth := runewidth.StringWidth(truncated); resultWidth < width {
			return truncated + strings.Repeat(" ", width-resultWidth)
		}
		return truncated
	}

	if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}
