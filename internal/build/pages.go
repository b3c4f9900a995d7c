package build

import (
	"context"

	"quillpress/internal/domain/site"
	"quillpress/internal/feed"
	"quillpress/internal/render"
)

func (s *siteBuild) buildHome(ctx context.Context) error {
	page := render.HomePage{
		Site:      s.cfg.Site,
		Articles:  s.articles(s.idx.Recent(s.cfg.Site.HomeEntries)),
		Generated: s.cfg.Build.Now,
		Title:     s.cfg.Site.Name,
	}
	htmlBytes, err := s.tpl.RenderHome(ctx, page)
	if err != nil {
		return err
	}
	return s.out.write(site.IndexRoute(), "", htmlBytes)
}

func (s *siteBuild) buildArchives(ctx context.Context) error {
	posts := s.articles(s.idx.Posts())
	page := render.ArchivesPage{
		Site:      s.cfg.Site,
		Groups:    render.GroupByYear(posts),
		Total:     len(posts),
		Generated: s.cfg.Build.Now,
		Title:     "Archives",
	}
	htmlBytes, err := s.tpl.RenderArchives(ctx, page)
	if err != nil {
		return err
	}
	return s.out.write(site.ArchiveRoute(), "", htmlBytes)
}

func (s *siteBuild) buildTagsOverview(ctx context.Context) error {
	tags := s.idx.Tags()
	stats := make([]render.TagStat, 0, len(tags))
	for _, t := range tags {
		stats = append(stats, render.TagStat{
			Name:   t.Name,
			URL:    site.TagURL(t.Name),
			Count:  t.Count,
			Weight: t.Weight,
		})
	}
	page := render.TagsPage{
		Site:      s.cfg.Site,
		Tags:      stats,
		Total:     len(stats),
		Generated: s.cfg.Build.Now,
		Title:     "Tags",
	}
	htmlBytes, err := s.tpl.RenderTagsPage(ctx, page)
	if err != nil {
		return err
	}
	return s.out.write(site.TagsRoute(), "", htmlBytes)
}

func (s *siteBuild) buildAllTags(ctx context.Context) error {
	for _, t := range s.idx.Tags() {
		page := render.TagPage{
			Site:      s.cfg.Site,
			Tag:       t.Name,
			Articles:  s.articles(s.idx.Tagged(t.Name)),
			Generated: s.cfg.Build.Now,
			Title:     "Tag: " + t.Name,
		}
		htmlBytes, err := s.tpl.RenderTag(ctx, page)
		if err != nil {
			return err
		}
		if err := s.out.write(site.TagRoute(t.Name), "", htmlBytes); err != nil {
			return err
		}
	}
	return nil
}

// buildNotFound is optional: themes without 404.html get no error page.
func (s *siteBuild) buildNotFound(ctx context.Context) error {
	if !s.tpl.HasTemplate(render.NotFoundTemplate) {
		return nil
	}
	htmlBytes, err := s.tpl.RenderNotFound(ctx, render.NotFoundPage{
		Site:  s.cfg.Site,
		Title: "Not Found",
	})
	if err != nil {
		return err
	}
	return s.out.write(site.NotFoundRoute(), "", htmlBytes)
}

func (s *siteBuild) buildFeeds() error {
	f, err := feed.Generate(feed.Options{
		Site:       s.cfg.Site,
		MaxEntries: s.cfg.Feed.MaxEntries,
		Updated:    s.cfg.Build.Now,
	}, s.articles(s.idx.Recent(s.cfg.Feed.MaxEntries)))
	if err != nil {
		return err
	}
	rss := site.Route{Kind: site.RouteRSS, OutPath: s.cfg.Feed.RSSPath}
	if err := s.out.write(rss, "", f.RSS); err != nil {
		return err
	}
	atom := site.Route{Kind: site.RouteAtom, OutPath: s.cfg.Feed.AtomPath}
	return s.out.write(atom, "", f.Atom)
}
