package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"quillpress/internal/domain/config"
	"quillpress/internal/domain/content"
	domainerr "quillpress/internal/domain/errors"
	"quillpress/internal/domain/site"
	"quillpress/internal/index"
	"quillpress/internal/ingest"
	"quillpress/internal/linkcheck"
	"quillpress/internal/manifest"
	"quillpress/internal/markdown"
	"quillpress/internal/render"
)

type Builder struct {
	Cfg    config.Config
	Logger *zap.Logger
}

type Result struct {
	Items    int
	Assets   int
	Outputs  int
	Warnings []linkcheck.Warning
}

func (b *Builder) log() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

func (b *Builder) pipeline() *markdown.Pipeline {
	return markdown.NewPipeline(markdown.Options{
		CodeStyle: b.Cfg.Build.CodeStyle,
		Logger:    b.log().Named("markdown"),
	})
}

// Run wipes the output directory and rebuilds the whole site. Any failure
// before link checking aborts the run and may leave a partial output tree.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	log := b.log().Named("build")
	outDir := b.Cfg.Build.OutputDir

	if err := b.wipeOutput(); err != nil {
		return nil, err
	}

	entries, err := ingest.Ingest(ingest.Options{
		SourceDir: b.Cfg.Build.ContentDir,
		Ignore:    b.Cfg.Build.Ignored,
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("ingest failed: %w", err)
	}
	items := ingest.Items(entries)
	assets := ingest.Assets(entries)
	idx := index.Build(items, b.Cfg.Tags.MaxStep)
	log.Info("loaded sources",
		zap.Int("items", len(items)),
		zap.Int("assets", len(assets)),
		zap.Int("tags", len(idx.ByTag)))

	st, err := manifest.Open(manifest.OpenOptions{Path: b.Cfg.Build.ManifestPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer st.Close()
	if err := st.Reset(b.Cfg.Build.Now); err != nil {
		return nil, fmt.Errorf("failed to reset manifest: %w", err)
	}

	tpl, err := render.NewTemplateRenderer(b.Cfg.Build.TemplateDir, b.Cfg.Site.Locale)
	if err != nil {
		return nil, fmt.Errorf("load templates(%s): %w", b.Cfg.Build.TemplateDir, err)
	}

	pipeline := b.pipeline()
	s := &siteBuild{
		cfg:   b.Cfg,
		log:   log,
		tpl:   tpl,
		idx:   idx,
		out:   &writer{root: outDir, manifest: st},
		proj:  &render.Projector{Pipeline: pipeline, SummaryWords: b.Cfg.Summary.Words, Locale: b.Cfg.Site.Locale},
		views: make(map[*content.Item]render.Article, len(items)),
	}
	if err := s.buildAll(ctx, items, assets); err != nil {
		return nil, err
	}

	checker := &linkcheck.Checker{
		OutputDir: outDir,
		Pipeline:  pipeline,
		Logger:    b.log().Named("links"),
	}
	warnings := checker.Check(items)

	written, err := st.Entries()
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	log.Info("build finished",
		zap.String("output", outDir),
		zap.Int("files", len(written)),
		zap.Int("link_warnings", len(warnings)))

	return &Result{
		Items:    len(items),
		Assets:   len(assets),
		Outputs:  len(written),
		Warnings: warnings,
	}, nil
}

// CheckLinks loads the content and validates its links against the current
// output tree without building anything. The age of that tree, as recorded in
// the manifest by the last build, is logged so stale output is easy to spot.
func (b *Builder) CheckLinks(ctx context.Context) ([]linkcheck.Warning, error) {
	log := b.log().Named("build")
	entries, err := ingest.Ingest(ingest.Options{
		SourceDir: b.Cfg.Build.ContentDir,
		Ignore:    b.Cfg.Build.Ignored,
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("ingest failed: %w", err)
	}
	if _, err := os.Stat(b.Cfg.Build.OutputDir); err != nil {
		return nil, domainerr.Wrap(domainerr.ErrIO, b.Cfg.Build.OutputDir, err)
	}

	builtAt, err := b.lastBuild()
	switch {
	case errors.Is(err, manifest.ErrNotFound):
		log.Warn("no build recorded for output tree", zap.String("output", b.Cfg.Build.OutputDir))
	case err != nil:
		return nil, fmt.Errorf("read manifest: %w", err)
	default:
		log.Info("checking output tree",
			zap.String("output", b.Cfg.Build.OutputDir),
			zap.Time("built_at", builtAt),
			zap.Duration("age", b.Cfg.Build.Now.Sub(builtAt)))
	}
	checker := &linkcheck.Checker{
		OutputDir: b.Cfg.Build.OutputDir,
		Pipeline:  b.pipeline(),
		Logger:    b.log().Named("links"),
	}
	return checker.Check(ingest.Items(entries)), nil
}

// lastBuild reads the start time of the last build from the manifest. A
// missing manifest file is manifest.ErrNotFound; it is not created here.
func (b *Builder) lastBuild() (time.Time, error) {
	if _, err := os.Stat(b.Cfg.Build.ManifestPath); err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, manifest.ErrNotFound
		}
		return time.Time{}, err
	}
	st, err := manifest.Open(manifest.OpenOptions{Path: b.Cfg.Build.ManifestPath})
	if err != nil {
		return time.Time{}, err
	}
	defer st.Close()
	return st.BuiltAt()
}

func (b *Builder) wipeOutput() error {
	outDir := filepath.Clean(b.Cfg.Build.OutputDir)
	if outDir == "." || outDir == string(filepath.Separator) {
		return errors.New("refusing to wipe output directory " + outDir)
	}
	if outDir == filepath.Clean(b.Cfg.Build.ContentDir) {
		return errors.New("output directory must differ from content directory")
	}
	if err := os.RemoveAll(outDir); err != nil {
		return domainerr.Wrap(domainerr.ErrIO, outDir, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return domainerr.Wrap(domainerr.ErrIO, outDir, err)
	}
	return nil
}

type siteBuild struct {
	cfg   config.Config
	log   *zap.Logger
	tpl   render.Renderer
	idx   *index.Index
	out   *writer
	proj  *render.Projector
	views map[*content.Item]render.Article
}

func (s *siteBuild) buildAll(ctx context.Context, items []*content.Item, assets []*content.Asset) error {
	if err := s.copyThemeStatic(); err != nil {
		return fmt.Errorf("copy static assets: %w", err)
	}
	if err := s.writeAssets(assets); err != nil {
		return fmt.Errorf("write assets: %w", err)
	}
	if err := s.buildItems(ctx, items); err != nil {
		return fmt.Errorf("build items: %w", err)
	}
	if err := s.buildHome(ctx); err != nil {
		return fmt.Errorf("build home: %w", err)
	}
	if err := s.buildArchives(ctx); err != nil {
		return fmt.Errorf("build archives: %w", err)
	}
	if err := s.buildTagsOverview(ctx); err != nil {
		return fmt.Errorf("build tags overview: %w", err)
	}
	if err := s.buildAllTags(ctx); err != nil {
		return fmt.Errorf("build tags: %w", err)
	}
	if err := s.buildNotFound(ctx); err != nil {
		return fmt.Errorf("build 404: %w", err)
	}
	if err := s.buildFeeds(); err != nil {
		return fmt.Errorf("build feeds: %w", err)
	}
	return nil
}

func (s *siteBuild) writeAssets(assets []*content.Asset) error {
	for _, a := range assets {
		r := site.Route{Kind: site.RouteAsset, Key: a.Path, OutPath: a.Path}
		if err := s.out.write(r, a.Source, a.Data); err != nil {
			return err
		}
	}
	return nil
}

// buildItems renders every item, public or not, to its own page.
func (s *siteBuild) buildItems(ctx context.Context, items []*content.Item) error {
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		art, err := s.proj.Article(it)
		if err != nil {
			return fmt.Errorf("%s: %w", it.Source, err)
		}
		s.views[it] = art

		page := render.ArticlePage{
			Site:      s.cfg.Site,
			Article:   art,
			Title:     art.Title,
			Generated: s.cfg.Build.Now,
		}
		htmlBytes, err := s.tpl.RenderArticle(ctx, it.Layout(), page)
		if err != nil {
			return fmt.Errorf("%s: %w", it.Source, err)
		}

		r := site.PageRoute(it.OutputDir(), it.Status == content.StatusDraft)
		if err := s.out.write(r, it.Source, htmlBytes); err != nil {
			return err
		}
		s.log.Debug("rendered", zap.String("source", it.Source), zap.String("out", r.OutPath))
	}
	return nil
}

func (s *siteBuild) articles(items []*content.Item) []render.Article {
	out := make([]render.Article, 0, len(items))
	for _, it := range items {
		out = append(out, s.views[it])
	}
	return out
}
