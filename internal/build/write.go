package build

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"go.uber.org/zap"

	domainerr "quillpress/internal/domain/errors"
	"quillpress/internal/domain/site"
	"quillpress/internal/manifest"
)

// writer writes output files and records each one in the manifest first, so
// that a second claim on the same path fails before anything is overwritten.
type writer struct {
	root     string
	manifest *manifest.Store
}

func (w *writer) write(r site.Route, source string, data []byte) error {
	if err := w.manifest.Record(r, source, data); err != nil {
		return err
	}
	return writeFile(w.root, r.OutPath, data)
}

func writeFile(root, rel string, data []byte) error {
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return domainerr.Wrap(domainerr.ErrIO, full, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return domainerr.Wrap(domainerr.ErrIO, full, err)
	}
	return nil
}

// copyThemeStatic mirrors build.static_dir into the output root. Content assets
// written afterwards may replace these files.
func (s *siteBuild) copyThemeStatic() error {
	src := s.cfg.Build.StaticDir
	if src == "" {
		return nil
	}
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug("no theme static directory", zap.String("dir", src))
			return nil
		}
		return domainerr.Wrap(domainerr.ErrIO, src, err)
	}
	if !info.IsDir() {
		return nil
	}

	if err := copy.Copy(src, s.out.root); err != nil {
		return domainerr.Wrap(domainerr.ErrIO, src, err)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return domainerr.Wrap(domainerr.ErrIO, path, err)
		}
		out := filepath.ToSlash(rel)
		return s.out.manifest.Record(site.Route{Kind: site.RouteTheme, Key: out, OutPath: out}, path, data)
	})
}
