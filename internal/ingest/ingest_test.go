package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"quillpress/internal/domain/content"
	domainerr "quillpress/internal/domain/errors"
)

func TestParseFrontMatter(t *testing.T) {
	meta, body, err := ParseFrontMatter("Title: Ratio: 2:1\r\ndate: 2020-01-02\n\nBody text\n\nmore\n")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"title": "Ratio: 2:1", "date": "2020-01-02"}
	if diff := cmp.Diff(want, meta); diff != "" {
		t.Fatalf("meta (-want +got):\n%s", diff)
	}
	if body != "Body text\n\nmore\n" {
		t.Fatalf("body = %q", body)
	}
}

func TestParseFrontMatterErrors(t *testing.T) {
	for name, src := range map[string]string{
		"no blank line": "title: x\ndate: 2020-01-01\nbody",
		"no delimiter":  "title: x\ndate 2020-01-01\n\nbody",
		"colon only":    "title:x\n\nbody",
	} {
		if _, _, err := ParseFrontMatter(src); !errors.Is(err, domainerr.ErrParse) {
			t.Errorf("%s: want ErrParse, got %v", name, err)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2020-03-04")
	if err != nil || !got.Equal(time.Date(2020, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date only: %v, %v", got, err)
	}
	got, err = ParseTimestamp("2020-03-04 17:45")
	if err != nil || !got.Equal(time.Date(2020, 3, 4, 17, 45, 0, 0, time.UTC)) {
		t.Fatalf("date time: %v, %v", got, err)
	}
	for _, bad := range []string{"2020/03/04", "2020-03-04 5pm", "yesterday"} {
		if _, err := ParseTimestamp(bad); !errors.Is(err, domainerr.ErrDateParse) {
			t.Errorf("%q: want ErrDateParse, got %v", bad, err)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":        "hello-world",
		"  Already--slugged  ": "alreadyslugged",
		"Ünïcode Títle 2":      "ünïcode-títle-2",
		"tabs\tand  spaces":    "tabs-and-spaces",
		"!!!":                  "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	ts := time.Date(2019, 7, 5, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		meta map[string]string
		want string
	}{
		{map[string]string{"title": "About Me"}, "about-me"},
		{map[string]string{"title": "About Me", "layout": "page"}, "about-me"},
		{map[string]string{"title": "Hello, World!", "layout": "post"}, "blog/2019/07/05/hello-world"},
		{map[string]string{"title": "x", "layout": "post", "save_as": "custom/Path.html"}, "custom/Path.html"},
	}
	for _, c := range cases {
		if got := OutputPath(c.meta, ts); got != c.want {
			t.Errorf("OutputPath(%v) = %q, want %q", c.meta, got, c.want)
		}
	}
}

func TestParseItem(t *testing.T) {
	it, err := ParseItem("c/a.md", []byte("Title: A\nDate: 2020-01-02 10:00\nStatus: DRAFT\nLayout: post\nTags: go, , web ,go\n\nbody"))
	if err != nil {
		t.Fatal(err)
	}
	if it.Status != content.StatusDraft || it.Path != "blog/2020/01/02/a" || it.OutputDir() != "draft/blog/2020/01/02/a" {
		t.Fatalf("unexpected item %+v", it)
	}
	if diff := cmp.Diff([]string{"go", "web", "go"}, it.Tags); diff != "" {
		t.Fatalf("tags (-want +got):\n%s", diff)
	}

	cases := map[string]error{
		"title: A\n\nbody":                           domainerr.ErrMissingField,
		"date: 2020-01-01\n\nbody":                   domainerr.ErrMissingField,
		"title: A\ndate: 2020-01-01\nstatus: x\n\nb": domainerr.ErrInvalidEnum,
		"title: A\ndate: 2020-13-01\n\nbody":         domainerr.ErrDateParse,
		"title: A\ndate: 2020-01-01":                 domainerr.ErrParse,
	}
	for src, want := range cases {
		if _, err := ParseItem("x.md", []byte(src)); !errors.Is(err, want) {
			t.Errorf("%q: want %v, got %v", src, want, err)
		}
	}
}

func TestParseItemRejectsEmptySlug(t *testing.T) {
	for _, title := range []string{"???", "🎉 !", "--"} {
		src := "title: " + title + "\ndate: 2020-01-01\n\nbody"
		if _, err := ParseItem("q.md", []byte(src)); !errors.Is(err, domainerr.ErrParse) {
			t.Errorf("title %q: want ErrParse, got %v", title, err)
		}
		// posts would land on the bare date directory
		post := "title: " + title + "\ndate: 2020-01-01\nlayout: post\n\nbody"
		if _, err := ParseItem("q.md", []byte(post)); !errors.Is(err, domainerr.ErrParse) {
			t.Errorf("post title %q: want ErrParse, got %v", title, err)
		}
	}

	it, err := ParseItem("q.md", []byte("title: ???\ndate: 2020-01-01\nsave_as: faq\n\nbody"))
	if err != nil {
		t.Fatalf("save_as should bypass the slug: %v", err)
	}
	if it.Path != "faq" {
		t.Fatalf("path = %q", it.Path)
	}
}

func TestAssetPath(t *testing.T) {
	cases := map[string]string{
		"extra/robots.txt": "robots.txt",
		"extra/deep/CNAME": "CNAME",
		"img/extra/a.png":  "img/extra/a.png",
		"images/photo.jpg": "images/photo.jpg",
	}
	for in, want := range cases {
		if got := AssetPath(in); got != want {
			t.Errorf("AssetPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIngestClassifiesAndFailsFast(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"post.md":          "title: P\ndate: 2020-01-01\n\nbody",
		"notes.markdown":   "title: N\ndate: 2020-01-02\n\nbody",
		"img/a.png":        "png",
		"extra/robots.txt": "robots",
		"gen.py":           "print()",
		".DS_Store":        "junk",
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

	ignore := func(ext string) bool { return ext == ".py" }
	entries, err := Ingest(Options{SourceDir: root, Ignore: ignore})
	if err != nil {
		t.Fatal(err)
	}
	var outs []string
	for _, e := range entries {
		outs = append(outs, e.OutputPath())
	}
	sort.Strings(outs)
	if diff := cmp.Diff([]string{"img/a.png", "n", "p", "robots.txt"}, outs); diff != "" {
		t.Fatalf("outputs (-want +got):\n%s", diff)
	}
	if len(Items(entries)) != 2 || len(Assets(entries)) != 2 {
		t.Fatalf("items %d assets %d", len(Items(entries)), len(Assets(entries)))
	}

	if err := os.WriteFile(filepath.Join(root, "broken.md"), []byte("no front matter"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Ingest(Options{SourceDir: root, Ignore: ignore}); !errors.Is(err, domainerr.ErrParse) {
		t.Fatalf("want ErrParse, got %v", err)
	}
}
