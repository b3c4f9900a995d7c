package render

import (
	"bytes"
	"context"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	domainerr "quillpress/internal/domain/errors"
	"quillpress/internal/domain/site"
)

const (
	HomeTemplate     = "index.html"
	ArchivesTemplate = "archives.html"
	TagsTemplate     = "tags.html"
	TagTemplate      = "tag.html"
	NotFoundTemplate = "404.html"
)

type TemplateRenderer struct {
	tpl *template.Template
}

// NewTemplateRenderer parses every *.html file directly under dir. Templates
// are addressed by file name, so a layout "post" renders with "post.html".
func NewTemplateRenderer(dir, locale string) (*TemplateRenderer, error) {
	pattern := filepath.Join(dir, "*.html")
	tpl, err := template.New("").Funcs(templateFuncs(locale)).ParseGlob(pattern)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.ErrTemplate, dir, err)
	}
	return &TemplateRenderer{tpl: tpl}, nil
}

func templateFuncs(locale string) template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			return FormatDate(t, locale)
		},
		"isoDate": func(t time.Time) string {
			return t.Format(time.RFC3339)
		},
		"tagURL": site.TagURL,
		"join":   strings.Join,
		"add":    func(a, b int) int { return a + b },
		"sub":    func(a, b int) int { return a - b },
	}
}

func (r *TemplateRenderer) HasTemplate(name string) bool {
	return r.tpl.Lookup(name) != nil
}

func (r *TemplateRenderer) RenderArticle(ctx context.Context, layout string, page ArticlePage) ([]byte, error) {
	return r.exec(layout+".html", page)
}

func (r *TemplateRenderer) RenderHome(ctx context.Context, page HomePage) ([]byte, error) {
	return r.exec(HomeTemplate, page)
}

func (r *TemplateRenderer) RenderArchives(ctx context.Context, page ArchivesPage) ([]byte, error) {
	return r.exec(ArchivesTemplate, page)
}

func (r *TemplateRenderer) RenderTagsPage(ctx context.Context, page TagsPage) ([]byte, error) {
	return r.exec(TagsTemplate, page)
}

func (r *TemplateRenderer) RenderTag(ctx context.Context, page TagPage) ([]byte, error) {
	return r.exec(TagTemplate, page)
}

func (r *TemplateRenderer) RenderNotFound(ctx context.Context, page NotFoundPage) ([]byte, error) {
	return r.exec(NotFoundTemplate, page)
}

func (r *TemplateRenderer) exec(name string, data interface{}) ([]byte, error) {
	t := r.tpl.Lookup(name)
	if t == nil {
		return nil, domainerr.New(domainerr.ErrTemplate, name, "template not found")
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, domainerr.Wrap(domainerr.ErrTemplate, name, err)
	}
	return buf.Bytes(), nil
}
