package content

import (
	"path"
	"strings"
	"time"
)

type Status string

const (
	StatusPublic Status = "public"
	StatusDraft  Status = "draft"
	StatusHidden Status = "hidden"
)

// ParseStatus matches s case-insensitively against the known statuses.
// An empty string is public.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusPublic:
		return StatusPublic, true
	case StatusDraft:
		return StatusDraft, true
	case StatusHidden:
		return StatusHidden, true
	}
	return "", false
}

const DefaultLayout = "page"

// SourceEntry is one file found under the content root: either an *Item or an *Asset.
type SourceEntry interface {
	SourcePath() string
	OutputPath() string
}

// Item is a markdown file with parsed front matter.
type Item struct {
	Source    string
	Path      string // output path relative to the site root, slash separated, no extension
	Body      string
	Metadata  map[string]string
	Timestamp time.Time
	Status    Status
	Tags      []string
}

func (it *Item) SourcePath() string { return it.Source }
func (it *Item) OutputPath() string { return it.Path }

func (it *Item) Title() string { return it.Metadata["title"] }

// Layout is the template name without extension; "page" when unset.
func (it *Item) Layout() string {
	if l := strings.TrimSpace(it.Metadata["layout"]); l != "" {
		return l
	}
	return DefaultLayout
}

// IsPost reports whether the item belongs in chronological listings.
func (it *Item) IsPost() bool {
	return it.Layout() != DefaultLayout
}

// OutputDir is where the item's index.html lives. Drafts are kept apart under draft/.
func (it *Item) OutputDir() string {
	if it.Status == StatusDraft {
		return path.Join("draft", it.Path)
	}
	return it.Path
}

// Asset is any non-markdown file, copied byte for byte.
type Asset struct {
	Source string
	Path   string
	Data   []byte
}

func (a *Asset) SourcePath() string { return a.Source }
func (a *Asset) OutputPath() string { return a.Path }
