package site

import "testing"

func TestTagRoutes(t *testing.T) {
	cases := []struct {
		tag, out, url string
	}{
		{"go", "tags/go/index.html", "/tags/go/"},
		{"c/c++", "tags/c-c++/index.html", "/tags/c-c++/"},
		{"café", "tags/café/index.html", "/tags/caf%C3%A9/"},
		{"two words", "tags/two words/index.html", "/tags/two%20words/"},
		{"  ", "tags/untitled/index.html", "/tags/untitled/"},
	}
	for _, c := range cases {
		if got := TagRoute(c.tag).OutPath; got != c.out {
			t.Errorf("TagRoute(%q) = %q, want %q", c.tag, got, c.out)
		}
		if got := TagURL(c.tag); got != c.url {
			t.Errorf("TagURL(%q) = %q, want %q", c.tag, got, c.url)
		}
	}
}

func TestPageRoute(t *testing.T) {
	r := PageRoute("draft/blog/2020/01/01/x", true)
	if r.Kind != RouteDraft || r.OutPath != "draft/blog/2020/01/01/x/index.html" {
		t.Fatalf("unexpected route %s", r)
	}
}
