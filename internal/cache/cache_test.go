package cache

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jfmyers9/toptags/pkg/lastfm"
)

func TestLoadOrCompute_Miss(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artists.json")
	calls := 0

	artists, cached, err := LoadOrCompute(path, func() ([]lastfm.Artist, error) {
		calls++
		return []lastfm.Artist{{Name: "X", Playcount: 10, URL: "u"}}, nil
	})
	if err != nil {
		t.Fatalf("LoadOrCompute: %v", err)
	}
	if cached {
		t.Error("expected cache miss")
	}
	if calls != 1 {
		t.Errorf("expected compute to run once, ran %d times", calls)
	}
	if len(artists) != 1 || artists[0].Name != "X" {
		t.Errorf("unexpected artists: %+v", artists)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected cache file: %v", err)
	}
	if !strings.Contains(string(data), `"playcount":"10"`) {
		t.Errorf("expected playcount encoded as string, got %s", data)
	}
}

func TestLoadOrCompute_Hit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artists.json")
	contents := `[{"name":"X","playcount":"10","url":"u"},{"name":"Y","playcount":"5","url":"v"}]`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	artists, cached, err := LoadOrCompute(path, func() ([]lastfm.Artist, error) {
		t.Fatal("compute must not run when the cache file exists")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("LoadOrCompute: %v", err)
	}
	if !cached {
		t.Error("expected cache hit")
	}

	want := []lastfm.Artist{{Name: "X", Playcount: 10, URL: "u"}, {Name: "Y", Playcount: 5, URL: "v"}}
	if len(artists) != len(want) {
		t.Fatalf("expected %d artists, got %d", len(want), len(artists))
	}
	for i := range want {
		if artists[i] != want[i] {
			t.Errorf("artist %d: expected %+v, got %+v", i, want[i], artists[i])
		}
	}
}

func TestLoadOrCompute_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, _, err := LoadOrCompute(path, func() ([]string, error) {
		t.Fatal("compute must not run for a corrupt cache")
		return nil, nil
	})
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "failed to decode cache") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadOrCompute_ComputeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artists.json")
	boom := errors.New("boom")

	_, _, err := LoadOrCompute(path, func() ([]string, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected compute error, got %v", err)
	}
	if Exists(path) {
		t.Error("cache file must not be written when compute fails")
	}
}

func TestTagCache(t *testing.T) {
	c, err := OpenTagCache(filepath.Join(t.TempDir(), "tags.db"))
	if err != nil {
		t.Fatalf("OpenTagCache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if _, ok := c.Get("Cher"); ok {
		t.Error("expected miss on empty cache")
	}

	tags := []lastfm.Tag{{Name: "pop", Count: 100}, {Name: "dance", Count: 40}}
	if err := c.Put("Cher", tags); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := c.Get("Cher")
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got) != 2 || got[0] != tags[0] || got[1] != tags[1] {
		t.Errorf("expected %+v, got %+v", tags, got)
	}

	// An empty tag list is a valid, cacheable answer
	if err := c.Put("Nobody", []lastfm.Tag{}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if got, ok := c.Get("Nobody"); !ok || len(got) != 0 {
		t.Errorf("expected cached empty list, got %v %v", got, ok)
	}

	if n := c.Len(); n != 2 {
		t.Errorf("expected 2 entries, got %d", n)
	}
}
