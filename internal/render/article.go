package render

import (
	"html/template"
	"strings"
	"time"

	"github.com/goodsign/monday"

	"quillpress/internal/domain/content"
	"quillpress/internal/domain/site"
	"quillpress/internal/markdown"
)

const dateLayout = "Monday 2 January 2006"

// FormatDate renders t as "<weekday> <day> <month> <year>" with names in the
// given locale (e.g. "en_US", "fr_FR"). Unknown locales fall back to English.
func FormatDate(t time.Time, locale string) string {
	return monday.Format(t, dateLayout, monday.Locale(locale))
}

// Projector builds Article views from content items.
type Projector struct {
	Pipeline     *markdown.Pipeline
	SummaryWords int
	Locale       string
}

func (p *Projector) Article(it *content.Item) (Article, error) {
	body, err := p.Pipeline.HTML(it.Body)
	if err != nil {
		return Article{}, err
	}
	summary, err := p.Pipeline.Summary(it.Body, p.SummaryWords)
	if err != nil {
		return Article{}, err
	}

	tags := make([]Tag, 0, len(it.Tags))
	for _, t := range it.Tags {
		tags = append(tags, Tag{Name: t, URL: site.TagURL(t)})
	}

	return Article{
		Title:     it.Title(),
		URL:       it.Path,
		Href:      Href(it.OutputDir()),
		Content:   template.HTML(body),
		Summary:   template.HTML(summary),
		Tags:      tags,
		Date:      FormatDate(it.Timestamp, p.Locale),
		Timestamp: it.Timestamp,
		Layout:    it.Layout(),
		Draft:     it.Status == content.StatusDraft,
		Meta:      it.Metadata,
	}, nil
}

// Href turns an output directory into a site-absolute directory link.
func Href(dir string) string {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return "/"
	}
	return "/" + dir + "/"
}
