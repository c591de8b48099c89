package collector

import (
	"context"
	"fmt"

	"github.com/jfmyers9/toptags/pkg/lastfm"
	"github.com/rs/zerolog"
)

// FetchTopArtists walks user.getTopArtists from startPage until the
// reported page reaches the reported total, returning every artist in page
// order.
//
// The throttle delay runs between pages only, so a single page chart costs
// exactly one request. Any error aborts the walk and nothing fetched so far
// is returned.
func FetchTopArtists(ctx context.Context, src Source, throttle *Throttle, user string, startPage int, logger zerolog.Logger) ([]lastfm.Artist, error) {
	var artists []lastfm.Artist
	current := startPage

	for {
		page, err := src.GetTopArtists(ctx, user, current)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch top artists page %d: %w", current, err)
		}

		artists = append(artists, page.Artists...)

		logger.Debug().
			Uint64("page", page.Page).
			Uint64("total_pages", page.TotalPages).
			Int("artists", len(page.Artists)).
			Msg("Fetched top artists page")

		if page.Page >= page.TotalPages {
			break
		}

		next := int(page.Page) + 1
		if next <= current {
			// The API echoed an earlier page; following it would loop forever.
			return nil, fmt.Errorf("top artists page %d reported page %d", current, page.Page)
		}

		if err := throttle.Wait(ctx); err != nil {
			return nil, err
		}
		current = next
	}

	if artists == nil {
		artists = []lastfm.Artist{}
	}

	return artists, nil
}
