package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// errorEnvelope is the JSON body Last.fm returns for API level failures.
type errorEnvelope struct {
	Code    int    `json:"error"`
	Message string `json:"message"`
}

// get makes a single GET request to the Last.fm API and returns the raw
// JSON body.
//
// There is no retry: transport failures, non-2xx statuses and API error
// envelopes are all returned to the caller as-is. Rate limiting is the
// caller's concern.
func (c *Client) get(ctx context.Context, method string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("method", method)
	query.Set("api_key", c.apiKey)
	query.Set("format", "json")

	endpoint := c.baseURL + "?" + query.Encode()
	c.logDebugf("lastfm: calling %s", method)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logDebugf("lastfm: %s returned %s", method, resp.Status)
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	// Check for API errors reported with a 2xx status
	var apiErr errorEnvelope
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != 0 {
		return nil, &Error{Code: apiErr.Code, Message: apiErr.Message}
	}

	c.logDebugf("lastfm: %s succeeded", method)
	return body, nil
}
