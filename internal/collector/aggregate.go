package collector

import (
	"context"
	"math"
	"sort"

	"github.com/jfmyers9/toptags/pkg/lastfm"
	"github.com/rs/zerolog"
)

// TopTag is a tag weighted by the play counts of the artists it was
// applied to.
type TopTag struct {
	Name      string `json:"name"`
	PlayCount uint32 `json:"play_count"`
}

// TagCache remembers per-artist tag lists between runs.
type TagCache interface {
	Get(artist string) ([]lastfm.Tag, bool)
	Put(artist string, tags []lastfm.Tag) error
}

// Aggregation is the outcome of AggregateTags.
type Aggregation struct {
	Tags   []TopTag // Sorted ascending by PlayCount
	Failed []string // Artists whose tags could not be fetched
}

// AggregateTags fetches the top tags of every artist in order and sums,
// for each tag name, the play counts of the artists that carry it.
//
// The throttle delay runs before every fetch, the first one included. A
// failed lookup is logged and the artist is skipped; only cancellation of
// ctx aborts the run. When cache is non-nil, cached artists are served from
// it without waiting or fetching, and fresh results are added to it.
func AggregateTags(ctx context.Context, src Source, throttle *Throttle, artists []lastfm.Artist, cache TagCache, logger zerolog.Logger) (*Aggregation, error) {
	totals := make(map[string]uint64)
	var failed []string

	for i, artist := range artists {
		tags, ok := cachedTags(cache, artist.Name)
		if !ok {
			if err := throttle.Wait(ctx); err != nil {
				return nil, err
			}

			var err error
			tags, err = src.GetArtistTopTags(ctx, artist.Name)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				logger.Warn().
					Err(err).
					Str("artist", artist.Name).
					Msgf("Could not get top tags for artist: %s", artist.Name)
				failed = append(failed, artist.Name)
				continue
			}

			if cache != nil {
				if err := cache.Put(artist.Name, tags); err != nil {
					logger.Warn().Err(err).Str("artist", artist.Name).Msg("Failed to cache tags")
				}
			}
		}

		for _, tag := range tags {
			totals[tag.Name] += uint64(artist.Playcount)
		}

		logger.Debug().
			Int("index", i+1).
			Int("total", len(artists)).
			Str("artist", artist.Name).
			Int("tags", len(tags)).
			Bool("cached", ok).
			Msg("Collected artist tags")
	}

	return &Aggregation{
		Tags:   rankTags(totals),
		Failed: failed,
	}, nil
}

func cachedTags(cache TagCache, artist string) ([]lastfm.Tag, bool) {
	if cache == nil {
		return nil, false
	}
	return cache.Get(artist)
}

// rankTags converts totals to TopTags sorted ascending by play count.
// Ties are left in whatever order the sort produces.
func rankTags(totals map[string]uint64) []TopTag {
	tags := make([]TopTag, 0, len(totals))
	for name, total := range totals {
		if total > math.MaxUint32 {
			total = math.MaxUint32
		}
		tags = append(tags, TopTag{Name: name, PlayCount: uint32(total)})
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].PlayCount < tags[j].PlayCount
	})

	return tags
}
