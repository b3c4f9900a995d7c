package render

import "context"

type Renderer interface {
	RenderArticle(ctx context.Context, layout string, page ArticlePage) ([]byte, error)
	RenderHome(ctx context.Context, page HomePage) ([]byte, error)
	RenderArchives(ctx context.Context, page ArchivesPage) ([]byte, error)
	RenderTagsPage(ctx context.Context, page TagsPage) ([]byte, error)
	RenderTag(ctx context.Context, page TagPage) ([]byte, error)
	RenderNotFound(ctx context.Context, page NotFoundPage) ([]byte, error)
	// HasTemplate reports whether name was loaded; used for optional pages.
	HasTemplate(name string) bool
}
