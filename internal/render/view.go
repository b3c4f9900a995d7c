package render

import (
	"html/template"
	"time"

	"quillpress/internal/domain/config"
)

// Article is the template-facing projection of a content item.
type Article struct {
	Title     string
	URL       string // output path, as derived by the loader
	Href      string // site-absolute link to the rendered page
	Content   template.HTML
	Summary   template.HTML
	Tags      []Tag
	Date      string // "<weekday> <day> <month> <year>" in the site locale
	Timestamp time.Time
	Layout    string
	Draft     bool
	Meta      map[string]string
}

type Tag struct {
	Name string
	URL  string
}

type ArticlePage struct {
	Site      config.SiteConfig
	Article   Article
	Title     string
	Generated time.Time
}

type HomePage struct {
	Site      config.SiteConfig
	Articles  []Article
	Generated time.Time
	Title     string
}

type ArchivesGroup struct {
	Year     int
	Articles []Article
	Count    int
}

type ArchivesPage struct {
	Site      config.SiteConfig
	Groups    []ArchivesGroup
	Total     int
	Generated time.Time
	Title     string
}

type TagStat struct {
	Name   string
	URL    string
	Count  int
	Weight int
}

type TagsPage struct {
	Site      config.SiteConfig
	Tags      []TagStat
	Total     int
	Generated time.Time
	Title     string
}

type TagPage struct {
	Site      config.SiteConfig
	Tag       string
	Articles  []Article
	Generated time.Time
	Title     string
}

type NotFoundPage struct {
	Site  config.SiteConfig
	Title string
}

// GroupByYear splits newest-first articles into per-year groups, preserving order.
func GroupByYear(articles []Article) []ArchivesGroup {
	var groups []ArchivesGroup
	for _, a := range articles {
		y := a.Timestamp.Year()
		if n := len(groups); n == 0 || groups[n-1].Year != y {
			groups = append(groups, ArchivesGroup{Year: y})
		}
		g := &groups[len(groups)-1]
		g.Articles = append(g.Articles, a)
		g.Count++
	}
	return groups
}
