package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	domainerr "quillpress/internal/domain/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadOverlaysDefaults(t *testing.T) {
	p := writeConfig(t, `
site:
  name: My Blog
  author: Ann
  url: https://blog.example.org/
feed:
  max_entries: 3
build:
  output_dir: out
  ignore_extensions: [".py", "psd"]
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	base := filepath.Dir(p)

	if cfg.Feed.MaxEntries != 3 || cfg.Feed.RSSPath != "feeds/all.rss.xml" {
		t.Fatalf("feed = %+v", cfg.Feed)
	}
	if cfg.Summary.Words != 100 || cfg.Tags.MaxStep != 5 || cfg.Site.Locale != "en_US" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if diff := cmp.Diff(filepath.Join(base, "out"), cfg.Build.OutputDir); diff != "" {
		t.Fatalf("output dir (-want +got):\n%s", diff)
	}
	if cfg.Build.ContentDir != filepath.Join(base, "content") {
		t.Fatalf("content dir = %q", cfg.Build.ContentDir)
	}
	if cfg.Build.Now.IsZero() {
		t.Fatal("Now should be set")
	}
	if !cfg.Build.Ignored(".PSD") || !cfg.Build.Ignored(".py") || cfg.Build.Ignored(".png") {
		t.Fatal("ignore list not applied")
	}
}

func TestValidateCollectsFieldErrors(t *testing.T) {
	p := writeConfig(t, `
site:
  name: ""
  url: not-a-url
feed:
  rss_path: /etc/feed.xml
  max_entries: -1
`)
	_, err := Load(p)
	if !errors.Is(err, domainerr.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
	var ve domainerr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %T", err)
	}
	var fields []string
	for _, it := range ve.Items {
		fields = append(fields, it.Field)
	}
	joined := strings.Join(fields, ",")
	for _, f := range []string{"site.name", "site.author", "site.url", "feed.rss_path", "feed.max_entries"} {
		if !strings.Contains(joined, f) {
			t.Errorf("missing error for %s in %s", f, joined)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist, got %v", err)
	}
}
