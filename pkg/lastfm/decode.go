package lastfm

import (
	"encoding/json"
	"strconv"
)

// decodeNumericString decodes a JSON string holding an unsigned integer,
// such as the "page" counter of a paginated response.
func decodeNumericString(key string, raw *json.RawMessage) (uint64, error) {
	if raw == nil {
		return 0, missingKey(key)
	}

	var s string
	if err := json.Unmarshal(*raw, &s); err != nil {
		return 0, invalidValue(key, err)
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, invalidValue(key, err)
	}

	return n, nil
}

// decodeList decodes a JSON array of T.
func decodeList[T any](key string, raw *json.RawMessage) ([]T, error) {
	if raw == nil {
		return nil, missingKey(key)
	}

	var items []T
	if err := json.Unmarshal(*raw, &items); err != nil {
		return nil, invalidValue(key, err)
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}
