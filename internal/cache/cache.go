// Package cache persists fetched collections to local files so repeated
// runs can skip the network.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LoadOrCompute returns the collection stored at path, or computes,
// stores and returns it when no file exists.
//
// The presence of the file alone decides whether it is used: there is no
// expiry. A file that cannot be decoded is an error; it is never replaced
// by a fresh computation. An error from compute leaves no file behind.
func LoadOrCompute[T any](path string, compute func() (T, error)) (T, bool, error) {
	var zero T

	value, err := load[T](path)
	if err == nil {
		return value, true, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return zero, false, err
	}

	value, err = compute()
	if err != nil {
		return zero, false, err
	}

	if err := store(path, value); err != nil {
		return zero, false, err
	}

	return value, false, nil
}

// Load decodes the collection stored at path.
func Load[T any](path string) (T, error) {
	return load[T](path)
}

// Exists reports whether a cache file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func load[T any](path string) (T, error) {
	var value T

	f, err := os.Open(path)
	if err != nil {
		return value, err
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(&value); err != nil {
		return value, fmt.Errorf("failed to decode cache %s: %w", path, err)
	}

	return value, nil
}

func store(path string, value any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(value); err != nil {
		return fmt.Errorf("failed to write cache %s: %w", path, err)
	}

	return f.Close()
}
