package content

import "testing"

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"":        StatusPublic,
		"Public":  StatusPublic,
		"DRAFT":   StatusDraft,
		" hidden": StatusHidden,
	}
	for in, want := range cases {
		got, ok := ParseStatus(in)
		if !ok || got != want {
			t.Errorf("ParseStatus(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseStatus("private"); ok {
		t.Error("unknown status accepted")
	}
}

func TestItemLayoutAndOutputDir(t *testing.T) {
	it := &Item{Path: "about", Metadata: map[string]string{}}
	if it.Layout() != "page" || it.IsPost() || it.OutputDir() != "about" {
		t.Fatalf("page defaults wrong: %q %v %q", it.Layout(), it.IsPost(), it.OutputDir())
	}
	it = &Item{Path: "blog/2020/01/01/x", Metadata: map[string]string{"layout": "post"}, Status: StatusDraft}
	if !it.IsPost() || it.OutputDir() != "draft/blog/2020/01/01/x" {
		t.Fatalf("draft post wrong: %v %q", it.IsPost(), it.OutputDir())
	}
}
