package feed

import (
	"fmt"
	"html/template"
	"strings"
	"testing"
	"time"

	"quillpress/internal/domain/config"
	"quillpress/internal/render"
)

func articles(n int) []render.Article {
	var out []render.Article
	for i := n; i >= 1; i-- {
		out = append(out, render.Article{
			Title:     fmt.Sprintf("Post %d", i),
			URL:       fmt.Sprintf("blog/2022/01/%02d/post-%d", i, i),
			Href:      fmt.Sprintf("/blog/2022/01/%02d/post-%d/", i, i),
			Summary:   template.HTML(fmt.Sprintf("<p>summary %d…</p>", i)),
			Timestamp: time.Date(2022, 1, i, 0, 0, 0, 0, time.UTC),
			Tags:      []render.Tag{{Name: "go", URL: "/tags/go/"}},
		})
	}
	return out
}

func opts(max int) Options {
	return Options{
		Site:       config.SiteConfig{Name: "Example", Author: "Ann", URL: "https://example.com/"},
		MaxEntries: max,
		Updated:    time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateCapsEntries(t *testing.T) {
	f, err := Generate(opts(2), articles(5))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	rss := string(f.RSS)
	if n := strings.Count(rss, "</item>"); n != 2 {
		t.Fatalf("rss items = %d, want 2\n%s", n, rss)
	}
	if !strings.Contains(rss, "Post 5") || strings.Contains(rss, "Post 3") {
		t.Fatalf("rss should hold the two newest posts\n%s", rss)
	}
	atomXML := string(f.Atom)
	if n := strings.Count(atomXML, "</entry>"); n != 2 {
		t.Fatalf("atom entries = %d, want 2\n%s", n, atomXML)
	}
}

func TestRSSGuidIsAbsoluteURL(t *testing.T) {
	f, err := Generate(opts(10), articles(1))
	if err != nil {
		t.Fatal(err)
	}
	want := "https://example.com/blog/2022/01/01/post-1/"
	rss := string(f.RSS)
	if !strings.Contains(rss, "<link>"+want+"</link>") {
		t.Fatalf("missing item link\n%s", rss)
	}
	if !strings.Contains(rss, ">"+want+"</guid>") {
		t.Fatalf("guid should equal link\n%s", rss)
	}
	if !strings.Contains(string(f.Atom), want) {
		t.Fatalf("atom missing entry link\n%s", f.Atom)
	}
}

func TestAbsoluteURL(t *testing.T) {
	cases := [][3]string{
		{"https://a.org", "/x/", "https://a.org/x/"},
		{"https://a.org/", "/x/", "https://a.org/x/"},
		{"https://a.org/", "x", "https://a.org/x"},
	}
	for _, c := range cases {
		if got := AbsoluteURL(c[0], c[1]); got != c[2] {
			t.Errorf("AbsoluteURL(%q, %q) = %q, want %q", c[0], c[1], got, c[2])
		}
	}
}
