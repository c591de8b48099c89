package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// ArtistService provides artist.* operations for the Last.fm API.
type ArtistService struct {
	client *Client
}

type topTagsResponse struct {
	TopTags *struct {
		Tag *json.RawMessage `json:"tag"`
	} `json:"toptags"`
}

// GetTopTags fetches the top tags applied to an artist over the trailing
// twelve months.
//
// A non-2xx status is returned as *StatusError.
func (s *ArtistService) GetTopTags(ctx context.Context, artist string) ([]Tag, error) {
	params := url.Values{
		"artist": {artist},
		"period": {string(Period12Month)},
	}

	body, err := s.client.get(ctx, "artist.gettoptags", params)
	if err != nil {
		return nil, err
	}

	tags, err := unmarshalTopTags(body)
	if err != nil {
		return nil, fmt.Errorf("lastfm: failed to parse top tags response: %w", err)
	}

	return tags, nil
}

func unmarshalTopTags(data []byte) ([]Tag, error) {
	var resp topTagsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	if resp.TopTags == nil {
		return nil, missingKey("toptags")
	}

	return decodeList[Tag]("tag", resp.TopTags.Tag)
}
