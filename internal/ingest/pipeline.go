package ingest

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"quillpress/internal/domain/content"
	domainerr "quillpress/internal/domain/errors"
)

type Options struct {
	SourceDir string
	Ignore    func(ext string) bool
	Logger    *zap.Logger
}

// Ingest loads every entry under SourceDir in walk order. The first failure
// aborts the whole load.
func Ingest(opt Options) ([]content.SourceEntry, error) {
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}

	files, err := DiscoverSource(opt.SourceDir, opt.Ignore)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.ErrIO, opt.SourceDir, err)
	}

	out := make([]content.SourceEntry, 0, len(files))
	for _, sf := range files {
		raw, err := os.ReadFile(sf.Path)
		if err != nil {
			return nil, domainerr.Wrap(domainerr.ErrIO, sf.Path, err)
		}
		switch sf.Kind {
		case KindContent:
			item, err := ParseItem(sf.Path, raw)
			if err != nil {
				return nil, err
			}
			log.Debug("loaded content",
				zap.String("source", sf.Rel),
				zap.String("out", item.Path),
				zap.String("status", string(item.Status)))
			out = append(out, item)
		case KindAsset:
			out = append(out, &content.Asset{
				Source: sf.Path,
				Path:   AssetPath(sf.Rel),
				Data:   raw,
			})
		default:
			return nil, fmt.Errorf("ingest: unknown kind %d for %s", sf.Kind, sf.Path)
		}
	}
	return out, nil
}

// Items returns the content items of entries, in order.
func Items(entries []content.SourceEntry) []*content.Item {
	var out []*content.Item
	for _, e := range entries {
		if it, ok := e.(*content.Item); ok {
			out = append(out, it)
		}
	}
	return out
}

// Assets returns the static assets of entries, in order.
func Assets(entries []content.SourceEntry) []*content.Asset {
	var out []*content.Asset
	for _, e := range entries {
		if a, ok := e.(*content.Asset); ok {
			out = append(out, a)
		}
	}
	return out
}
