// Package collector builds a weighted tag profile for a Last.fm user.
//
// It walks the user's top artists chart, looks up each artist's top tags,
// and sums artist play counts per tag. Both the artist list and the final
// tag ranking are cached as JSON files; a present file short-circuits all
// network work for that step.
package collector

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jfmyers9/toptags/internal/cache"
	"github.com/jfmyers9/toptags/pkg/lastfm"
	"github.com/rs/zerolog"
)

// Cache file names inside Config.CacheDir.
const (
	ArtistsFile = "artists.json"
	TagsFile    = "tags.json"
)

// Config holds collector configuration
type Config struct {
	User     string        // Last.fm user whose chart is collected
	CacheDir string        // Directory holding artists.json and tags.json
	Throttle time.Duration // Delay before each request
}

// Recorder stores freshly computed tag rankings.
type Recorder interface {
	Record(ctx context.Context, runID, user string, tags []TopTag) error
}

// Result summarizes a Run.
type Result struct {
	RunID         string
	Artists       []lastfm.Artist
	Tags          []TopTag
	Failed        []string // Artists skipped during aggregation
	ArtistsCached bool     // Artists were read from artists.json
	TagsCached    bool     // Tags were read from tags.json
}

// Option configures optional collector behaviour.
type Option func(*Collector)

// WithTagCache serves per-artist tag lookups from c when possible.
func WithTagCache(c TagCache) Option {
	return func(col *Collector) {
		col.tagCache = c
	}
}

// WithRecorder records every freshly computed ranking to r.
func WithRecorder(r Recorder) Option {
	return func(col *Collector) {
		col.recorder = r
	}
}

// Collector wires the caches, the paginator and the aggregator together
type Collector struct {
	config   Config
	source   Source
	throttle *Throttle
	tagCache TagCache
	recorder Recorder
	logger   zerolog.Logger
}

// New creates a new Collector instance
func New(cfg Config, src Source, logger zerolog.Logger, opts ...Option) *Collector {
	c := &Collector{
		config:   cfg,
		source:   src,
		throttle: NewThrottle(cfg.Throttle),
		logger:   logger.With().Str("component", "collector").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ArtistsPath returns the location of the artist cache.
func (c *Collector) ArtistsPath() string {
	return filepath.Join(c.config.CacheDir, ArtistsFile)
}

// TagsPath returns the location of the tag cache.
func (c *Collector) TagsPath() string {
	return filepath.Join(c.config.CacheDir, TagsFile)
}

// LoadArtists returns the cached artist list, fetching and caching it when
// artists.json is absent.
func (c *Collector) LoadArtists(ctx context.Context) ([]lastfm.Artist, bool, error) {
	return cache.LoadOrCompute(c.ArtistsPath(), func() ([]lastfm.Artist, error) {
		c.logger.Info().Str("user", c.config.User).Msg("Fetching top artists")
		return FetchTopArtists(ctx, c.source, c.throttle, c.config.User, 1, c.logger)
	})
}

// LoadTopTags returns the cached tag ranking, aggregating and caching it
// when tags.json is absent. The returned slice of failed artists is only
// populated for a fresh aggregation.
func (c *Collector) LoadTopTags(ctx context.Context, artists []lastfm.Artist) ([]TopTag, []string, bool, error) {
	var failed []string
	tags, cached, err := cache.LoadOrCompute(c.TagsPath(), func() ([]TopTag, error) {
		c.logger.Info().Int("artists", len(artists)).Msg("Fetching artist tags")
		agg, err := AggregateTags(ctx, c.source, c.throttle, artists, c.tagCache, c.logger)
		if err != nil {
			return nil, err
		}
		failed = agg.Failed
		return agg.Tags, nil
	})
	return tags, failed, cached, err
}

// Run loads or computes the artist list and then the tag ranking.
func (c *Collector) Run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	logger := c.logger.With().Str("run_id", res.RunID).Logger()

	artists, cached, err := c.LoadArtists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load artists: %w", err)
	}
	res.Artists = artists
	res.ArtistsCached = cached

	logger.Info().
		Int("artists", len(artists)).
		Bool("cached", cached).
		Msg("Loaded artists")

	tags, failed, cached, err := c.LoadTopTags(ctx, artists)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	res.Tags = tags
	res.Failed = failed
	res.TagsCached = cached

	logger.Info().
		Int("tags", len(tags)).
		Int("failed", len(failed)).
		Bool("cached", cached).
		Msg("Loaded tags")

	if !cached && c.recorder != nil {
		if err := c.recorder.Record(ctx, res.RunID, c.config.User, tags); err != nil {
			logger.Warn().Err(err).Msg("Failed to record history snapshot")
		}
	}

	return res, nil
}
