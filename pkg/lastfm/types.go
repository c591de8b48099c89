package lastfm

// Artist is one entry of a user's top artists chart.
//
// Playcount travels as a numeric string, both on the wire and when an
// Artist is re-encoded.
type Artist struct {
	Name      string `json:"name"`
	Playcount uint32 `json:"playcount,string"`
	URL       string `json:"url"`
}

// Tag is one entry of an artist's top tags.
type Tag struct {
	Name  string `json:"name"`
	Count uint   `json:"count"`
	URL   string `json:"url"`
}

// TopArtistsPage is a single page of user.getTopArtists.
type TopArtistsPage struct {
	Page       uint64   // Page number reported by the API
	TotalPages uint64   // Total number of pages reported by the API
	Artists    []Artist // Artists on this page
}

// Period restricts chart methods to a time range.
type Period string

// Chart periods accepted by Last.fm.
const (
	PeriodOverall Period = "overall"
	Period7Day    Period = "7day"
	Period1Month  Period = "1month"
	Period3Month  Period = "3month"
	Period6Month  Period = "6month"
	Period12Month Period = "12month"
)
