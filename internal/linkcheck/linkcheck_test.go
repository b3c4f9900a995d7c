package linkcheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"quillpress/internal/domain/content"
	"quillpress/internal/markdown"
)

func TestCheckReportsDanglingAndMalformed(t *testing.T) {
	out := t.TempDir()
	for _, p := range []string{"blog/2020/01/02/ok/index.html", "tags/café/index.html", "img/a.png"} {
		full := filepath.Join(out, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	core, logs := observer.New(zapcore.WarnLevel)
	c := &Checker{
		OutputDir: out,
		Pipeline:  markdown.NewPipeline(markdown.Options{}),
		Logger:    zap.New(core),
	}
	items := []*content.Item{{
		Source: "content/a.md",
		Body: "[ok](/blog/2020/01/02/ok/#top) [arch](!/blog/2020/01/02/ok/) " +
			"[img](/img/a.png) [tag](/tags/caf%C3%A9/) [ext](https://x.org) [frag](#x) " +
			"[gone](/blog/missing/) [rel](notes/x)",
	}}

	got := c.Check(items)
	want := []Warning{
		{Source: "content/a.md", Link: "/blog/missing/", Problem: Dangling},
		{Source: "content/a.md", Link: "notes/x", Problem: Malformed},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("warnings (-want +got):\n%s", diff)
	}
	if logs.Len() != 2 {
		t.Fatalf("logged %d warnings, want 2", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "dangling link" || entry.ContextMap()["link"] != "/blog/missing/" {
		t.Fatalf("unexpected log entry %+v", entry)
	}
}

func TestTarget(t *testing.T) {
	cases := map[string]string{
		"/a/b/":      "a/b",
		"/a/b/#frag": "a/b",
		"/a?x=1":     "a",
		"/":          "",
	}
	for in, want := range cases {
		if got := Target(in); got != want {
			t.Errorf("Target(%q) = %q, want %q", in, got, want)
		}
	}
}
