package ingest

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"quillpress/internal/domain/content"
	domainerr "quillpress/internal/domain/errors"
)

const (
	metaSep    = ": "
	dateLayout = "2006-01-02 15:04"
)

// ParseFrontMatter splits src at the first blank line into a metadata block and
// the markdown body. Every metadata line is "key: value"; keys are lower-cased.
func ParseFrontMatter(src string) (map[string]string, string, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")

	head, body, ok := strings.Cut(src, "\n\n")
	if !ok {
		return nil, "", fmt.Errorf("%w: no blank line after metadata", domainerr.ErrParse)
	}

	meta := make(map[string]string)
	for i, line := range strings.Split(head, "\n") {
		k, v, ok := strings.Cut(line, metaSep)
		if !ok {
			return nil, "", fmt.Errorf("%w: line %d: metadata must be %q delimited", domainerr.ErrParse, i+1, metaSep)
		}
		meta[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return meta, body, nil
}

// ParseTimestamp accepts "2006-01-02" or "2006-01-02 15:04", in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, " ") {
		s += " 00:00"
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domainerr.ErrDateParse, err)
	}
	return t, nil
}

// Slugify keeps letters, digits and whitespace, lower-cases, and joins the
// remaining words with single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	words := strings.Fields(b.String())
	return cases.Lower(language.Und).String(strings.Join(words, "-"))
}

// SplitTags splits a comma separated list, dropping empty pieces.
func SplitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// OutputPath derives where an item is written, relative to the site root.
func OutputPath(meta map[string]string, ts time.Time) string {
	if s, ok := meta["save_as"]; ok && s != "" {
		return s
	}
	slug := Slugify(meta["title"])
	layout := meta["layout"]
	if layout == "" || layout == content.DefaultLayout {
		return slug
	}
	y, m, d := ts.Date()
	return path.Join(
		"blog",
		fmt.Sprintf("%04d", y),
		fmt.Sprintf("%02d", m),
		fmt.Sprintf("%02d", d),
		slug,
	)
}

// ParseItem turns a markdown source file into a content item.
func ParseItem(source string, raw []byte) (*content.Item, error) {
	meta, body, err := ParseFrontMatter(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	if _, ok := meta["title"]; !ok {
		return nil, domainerr.New(domainerr.ErrMissingField, source, "title")
	}
	date, ok := meta["date"]
	if !ok {
		return nil, domainerr.New(domainerr.ErrMissingField, source, "date")
	}
	ts, err := ParseTimestamp(date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if meta["save_as"] == "" && Slugify(meta["title"]) == "" {
		return nil, domainerr.New(domainerr.ErrParse, source,
			fmt.Sprintf("title %q has no letters or digits to build a slug from; set save_as", meta["title"]))
	}
	status, ok := content.ParseStatus(meta["status"])
	if !ok {
		return nil, domainerr.New(domainerr.ErrInvalidEnum, source, fmt.Sprintf("status %q", meta["status"]))
	}

	return &content.Item{
		Source:    source,
		Path:      OutputPath(meta, ts),
		Body:      body,
		Metadata:  meta,
		Timestamp: ts,
		Status:    status,
		Tags:      SplitTags(meta["tags"]),
	}, nil
}
