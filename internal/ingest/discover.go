package ingest

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

type Kind int

const (
	KindContent Kind = iota
	KindAsset
)

type SourceFile struct {
	Path string // filesystem path
	Rel  string // slash-separated path relative to the content root
	Kind Kind
}

// DiscoverSource walks root depth first and classifies every regular file.
// ignore is consulted with the lower-cased extension; ignored files produce no entry.
func DiscoverSource(root string, ignore func(ext string) bool) ([]SourceFile, error) {
	var out []SourceFile

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Name() == ".DS_Store" {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ignore != nil && ignore(ext) {
			return nil
		}
		sf := SourceFile{Path: p, Rel: filepath.ToSlash(rel), Kind: KindAsset}
		if isMarkdown(ext) {
			sf.Kind = KindContent
		}
		out = append(out, sf)
		return nil
	})
	return out, err
}

func isMarkdown(ext string) bool {
	return ext == ".md" || ext == ".markdown"
}

// AssetPath maps a static file to its output path. Files under the top-level
// extra/ directory land directly in the output root.
func AssetPath(rel string) string {
	if first, _, ok := strings.Cut(rel, "/"); ok && first == "extra" {
		return path.Base(rel)
	}
	return rel
}
