package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	domainerr "quillpress/internal/domain/errors"
)

func writeSite(t *testing.T, siteYAML string) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"site.yaml":               siteYAML,
		"content/hello.md":        "title: Hello\ndate: 2022-04-01\nlayout: post\ntags: intro\n\nSee [about](/about/) and [gone](/gone/).\n",
		"content/about.md":        "title: About\ndate: 2022-01-01\n\nabout\n",
		"templates/post.html":     "{{.Article.Content}}",
		"templates/page.html":     "{{.Article.Content}}",
		"templates/index.html":    "{{range .Articles}}{{.Title}}{{end}}",
		"templates/archives.html": "{{.Total}}",
		"templates/tags.html":     "{{.Total}}",
		"templates/tag.html":      "{{.Tag}}",
	}
	for rel, body := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

const siteYAML = "site:\n  name: T\n  author: Ann\n  url: https://t.example\n"

func TestBuildThenCheckLinks(t *testing.T) {
	root := writeSite(t, siteYAML)
	cfgPath := filepath.Join(root, "site.yaml")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", cfgPath, "build"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "public", "blog", "2022", "04", "01", "hello", "index.html")); err != nil {
		t.Fatalf("post not written: %v", err)
	}

	var out bytes.Buffer
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "check-links"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("check-links: %v", err)
	}
	if !strings.Contains(out.String(), "1 link warning(s)") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestInvalidConfig(t *testing.T) {
	root := writeSite(t, "site:\n  name: T\n")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(root, "site.yaml"), "build"})
	if err := cmd.Execute(); !errors.Is(err, domainerr.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}
