package collector

import (
	"context"
	"fmt"

	"github.com/jfmyers9/toptags/pkg/lastfm"
	"github.com/rs/zerolog"
)

// Source is the subset of the Last.fm API the collector needs.
type Source interface {
	GetTopArtists(ctx context.Context, user string, page int) (*lastfm.TopArtistsPage, error)
	GetArtistTopTags(ctx context.Context, artist string) ([]lastfm.Tag, error)
}

// Client wraps the Last.fm API client
type Client struct {
	client *lastfm.Client
}

// NewClient creates a Source backed by the Last.fm API.
func NewClient(apiKey string, logger zerolog.Logger) (*Client, error) {
	client, err := lastfm.NewClient(lastfm.Config{
		APIKey: apiKey,
		Logger: debugLogger{logger: logger.With().Str("component", "lastfm").Logger()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create lastfm client: %w", err)
	}
	return &Client{client: client}, nil
}

// NewClientFrom wraps an already configured Last.fm client.
func NewClientFrom(client *lastfm.Client) *Client {
	return &Client{client: client}
}

func (c *Client) GetTopArtists(ctx context.Context, user string, page int) (*lastfm.TopArtistsPage, error) {
	return c.client.User().GetTopArtists(ctx, user, page)
}

func (c *Client) GetArtistTopTags(ctx context.Context, artist string) ([]lastfm.Tag, error) {
	return c.client.Artist().GetTopTags(ctx, artist)
}

// debugLogger adapts zerolog to lastfm.Logger.
type debugLogger struct {
	logger zerolog.Logger
}

func (l debugLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}
