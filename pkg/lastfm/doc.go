// Package lastfm provides a client library for the Last.fm API 2.0.
//
// # Overview
//
// This package implements the read-only chart methods needed to build a
// listening profile: a user's top artists and an artist's top tags. It
// requests JSON from Last.fm and decodes it into typed values once, at the
// boundary, so callers never deal with numeric strings or missing keys.
//
// # Quick Start
//
//	import "github.com/jfmyers9/toptags/pkg/lastfm"
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey: "your-api-key",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Top Artists
//
// user.getTopArtists is paginated. Each call fetches a single page:
//
//	page, err := client.User().GetTopArtists(ctx, "rj", 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range page.Artists {
//	    fmt.Println(a.Name, a.Playcount)
//	}
//	if page.Page >= page.TotalPages {
//	    // last page
//	}
//
// # Top Tags
//
//	tags, err := client.Artist().GetTopTags(ctx, "Cher")
//
// # Error Handling
//
// Requests are never retried. Failures come back as one of three types:
//
//	var apiErr *lastfm.Error         // {"error": N, "message": "..."} body
//	var statusErr *lastfm.StatusError // non-2xx HTTP status
//	var decodeErr *lastfm.DecodeError // missing key or malformed value
//	if errors.As(err, &statusErr) {
//	    fmt.Println(statusErr.StatusCode)
//	}
//
// # Rate Limiting
//
// The client does not throttle. Last.fm asks for no more than a few
// requests per second per key; callers are expected to pace themselves.
//
// # Configuration
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey:     "your-api-key",
//	    HTTPClient: &http.Client{Timeout: 30 * time.Second},
//	    Logger:     myLogger, // Implements lastfm.Logger interface
//	})
//
// # API Coverage
//
// Currently implemented:
//   - user.getTopArtists
//   - artist.getTopTags
//
// # Last.fm API Documentation
//
// https://www.last.fm/api
package lastfm
