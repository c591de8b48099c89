package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// UserService provides user.* operations for the Last.fm API.
type UserService struct {
	client *Client
}

// topArtistsResponse mirrors the JSON body of user.getTopArtists.
//
// Leaves are kept raw so a missing key can be told apart from a
// malformed one.
type topArtistsResponse struct {
	TopArtists *struct {
		Attr *struct {
			Page       *json.RawMessage `json:"page"`
			TotalPages *json.RawMessage `json:"totalPages"`
		} `json:"@attr"`
		Artist *json.RawMessage `json:"artist"`
	} `json:"topartists"`
}

// GetTopArtists fetches one page of a user's top artists.
//
// Any transport, status or decode error is returned immediately.
//
// Example:
//
//	page, err := client.User().GetTopArtists(ctx, "rj", 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("page %d of %d\n", page.Page, page.TotalPages)
func (s *UserService) GetTopArtists(ctx context.Context, user string, page int) (*TopArtistsPage, error) {
	params := url.Values{
		"user": {user},
		"page": {strconv.Itoa(page)},
	}

	body, err := s.client.get(ctx, "user.gettopartists", params)
	if err != nil {
		return nil, err
	}

	result, err := unmarshalTopArtists(body)
	if err != nil {
		return nil, fmt.Errorf("lastfm: failed to parse top artists response: %w", err)
	}

	return result, nil
}

// unmarshalTopArtists validates and decodes a user.getTopArtists body.
func unmarshalTopArtists(data []byte) (*TopArtistsPage, error) {
	var resp topArtistsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	if resp.TopArtists == nil {
		return nil, missingKey("topartists")
	}
	if resp.TopArtists.Attr == nil {
		return nil, missingKey("@attr")
	}

	page, err := decodeNumericString("page", resp.TopArtists.Attr.Page)
	if err != nil {
		return nil, err
	}

	totalPages, err := decodeNumericString("totalPages", resp.TopArtists.Attr.TotalPages)
	if err != nil {
		return nil, err
	}

	artists, err := decodeList[Artist]("artist", resp.TopArtists.Artist)
	if err != nil {
		return nil, err
	}

	return &TopArtistsPage{
		Page:       page,
		TotalPages: totalPages,
		Artists:    artists,
	}, nil
}
