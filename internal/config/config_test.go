package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LASTFM_USER", "")
	t.Setenv("LASTFM_API_KEY", "")

	cfg, err := load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.CacheDir != "." {
		t.Errorf("expected cache dir '.', got %q", cfg.CacheDir)
	}
	if cfg.Throttle != time.Second {
		t.Errorf("expected 1s throttle, got %v", cfg.Throttle)
	}
	if cfg.TagCache {
		t.Error("expected tag cache disabled by default")
	}
	if !cfg.History {
		t.Error("expected history enabled by default")
	}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingUser) {
		t.Errorf("expected ErrMissingUser, got %v", err)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LASTFM_USER", "rj")
	t.Setenv("LASTFM_API_KEY", "key")
	t.Setenv("TOPTAGS_THROTTLE", "250ms")

	cfg, err := load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.LastFM.User != "rj" || cfg.LastFM.APIKey != "key" {
		t.Errorf("unexpected credentials %+v", cfg.LastFM)
	}
	if cfg.Throttle != 250*time.Millisecond {
		t.Errorf("expected 250ms throttle, got %v", cfg.Throttle)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LASTFM_USER", "")
	t.Setenv("LASTFM_API_KEY", "")

	dir := t.TempDir()
	contents := `cache_dir: /tmp/toptags
tag_cache: true
history: false
lastfm:
  user: fromfile
  api_key: filekey
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.CacheDir != "/tmp/toptags" || !cfg.TagCache || cfg.History {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.LastFM.User != "fromfile" || cfg.LastFM.APIKey != "filekey" {
		t.Errorf("unexpected credentials %+v", cfg.LastFM)
	}
	if got := cfg.Path("tags.json"); got != filepath.Join("/tmp/toptags", "tags.json") {
		t.Errorf("unexpected path %s", got)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{LastFM: LastFMConfig{User: "rj"}}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}
