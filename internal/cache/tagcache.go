package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jfmyers9/toptags/pkg/lastfm"
	bolt "go.etcd.io/bbolt"
)

var bucketArtistTags = []byte("artist_tags")

// TagCache stores each artist's top tags in a bbolt database so that an
// interrupted aggregation can resume without fetching finished artists
// again.
type TagCache struct {
	db *bolt.DB
}

// OpenTagCache opens (creating if needed) the tag cache at path.
func OpenTagCache(path string) (*TagCache, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketArtistTags)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &TagCache{db: db}, nil
}

// Close closes the database.
func (c *TagCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Get returns the cached tags for artist. Entries that cannot be decoded
// are treated as absent.
func (c *TagCache) Get(artist string) ([]lastfm.Tag, bool) {
	var tags []lastfm.Tag
	found := false

	_ = c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketArtistTags).Get([]byte(artist))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &tags); err != nil {
			return nil
		}
		found = true
		return nil
	})

	return tags, found
}

// Put stores the tags fetched for artist.
func (c *TagCache) Put(artist string, tags []lastfm.Tag) error {
	data, err := json.Marshal(tags)
	if err != nil {
		return err
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketArtistTags).Put([]byte(artist), data)
	})
}

// Len returns the number of artists with cached tags.
func (c *TagCache) Len() int {
	n := 0
	_ = c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketArtistTags).Stats().KeyN
		return nil
	})
	return n
}
