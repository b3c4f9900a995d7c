package site

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

type RouteKind string

const (
	RouteIndex    RouteKind = "index"
	RouteContent  RouteKind = "content"
	RouteDraft    RouteKind = "draft"
	RouteTag      RouteKind = "tag"
	RouteTags     RouteKind = "tags"
	RouteArchive  RouteKind = "archive"
	RouteAsset    RouteKind = "asset"
	RouteTheme    RouteKind = "theme"
	RouteRSS      RouteKind = "rss"
	RouteAtom     RouteKind = "atom"
	RouteNotFound RouteKind = "404"
)

// Route is one file in the output tree.
type Route struct {
	Kind    RouteKind
	Key     string
	OutPath string
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Key != "" {
		parts = append(parts, "key="+r.Key)
	}
	if r.OutPath != "" {
		parts = append(parts, "out="+r.OutPath)
	}
	return strings.Join(parts, " ")
}

func IndexRoute() Route    { return Route{Kind: RouteIndex, OutPath: "index.html"} }
func ArchiveRoute() Route  { return Route{Kind: RouteArchive, OutPath: "archives.html"} }
func TagsRoute() Route     { return Route{Kind: RouteTags, OutPath: "tags.html"} }
func NotFoundRoute() Route { return Route{Kind: RouteNotFound, OutPath: "404.html"} }

func TagRoute(tag string) Route {
	return Route{
		Kind:    RouteTag,
		Key:     tag,
		OutPath: path.Join("tags", TagSegment(tag), "index.html"),
	}
}

// PageRoute is the index.html under an item's output directory.
func PageRoute(dir string, draft bool) Route {
	kind := RouteContent
	if draft {
		kind = RouteDraft
	}
	return Route{Kind: kind, Key: dir, OutPath: path.Join(dir, "index.html")}
}

// TagURL is the site-relative URL of a tag page.
func TagURL(tag string) string {
	return fmt.Sprintf("/tags/%s/", url.PathEscape(TagSegment(tag)))
}

// TagSegment makes a tag safe to use as a single directory name.
func TagSegment(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "untitled"
	}
	repl := func(r rune) rune {
		switch r {
		case '/', '\\':
			return '-'
		}
		return r
	}
	return strings.Map(repl, tag)
}
