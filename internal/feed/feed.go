package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	atom "github.com/thomas11/atomgenerator"

	"quillpress/internal/domain/config"
	"quillpress/internal/render"
)

// Feeds holds the serialized syndication documents of one build.
type Feeds struct {
	RSS  []byte
	Atom []byte
}

type Options struct {
	Site       config.SiteConfig
	MaxEntries int
	Updated    time.Time
}

// Generate serializes the first MaxEntries of articles, which the caller
// passes newest first, as RSS 2.0 and Atom.
func Generate(opt Options, articles []render.Article) (Feeds, error) {
	if opt.MaxEntries > 0 && len(articles) > opt.MaxEntries {
		articles = articles[:opt.MaxEntries]
	}

	rss, err := toRSS(opt, articles)
	if err != nil {
		return Feeds{}, fmt.Errorf("rss: %w", err)
	}
	atomXML, err := toAtom(opt, articles)
	if err != nil {
		return Feeds{}, fmt.Errorf("atom: %w", err)
	}
	return Feeds{RSS: rss, Atom: atomXML}, nil
}

// AbsoluteURL joins the site URL and a site-absolute path with exactly one slash.
func AbsoluteURL(siteURL, p string) string {
	return strings.TrimSuffix(siteURL, "/") + "/" + strings.TrimPrefix(p, "/")
}

func toRSS(opt Options, articles []render.Article) ([]byte, error) {
	f := &feeds.Feed{
		Title:       opt.Site.Name,
		Link:        &feeds.Link{Href: AbsoluteURL(opt.Site.URL, "/")},
		Description: opt.Site.Name,
		Author:      &feeds.Author{Name: opt.Site.Author},
		Updated:     opt.Updated,
		Created:     opt.Updated,
	}
	for _, a := range articles {
		link := AbsoluteURL(opt.Site.URL, a.Href)
		f.Items = append(f.Items, &feeds.Item{
			Title:       a.Title,
			Link:        &feeds.Link{Href: link},
			Author:      &feeds.Author{Name: opt.Site.Author},
			Description: string(a.Summary),
			Id:          link,
			Created:     a.Timestamp,
		})
	}
	s, err := f.ToRss()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func toAtom(opt Options, articles []render.Article) ([]byte, error) {
	f := atom.Feed{
		Title:   opt.Site.Name,
		Link:    AbsoluteURL(opt.Site.URL, "/"),
		PubDate: opt.Updated,
	}
	f.AddAuthor(atom.Author{
		Name: opt.Site.Author,
		Uri:  AbsoluteURL(opt.Site.URL, "/"),
	})

	for _, a := range articles {
		e := &atom.Entry{
			Title:       a.Title,
			Description: string(a.Summary),
			Link:        AbsoluteURL(opt.Site.URL, a.Href),
			PubDate:     a.Timestamp,
		}
		for _, t := range a.Tags {
			e.AddCategory(atom.Category{Term: t.Name})
		}
		f.AddEntry(e)
	}

	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs[0]
	}
	return f.GenXml()
}
