package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 200 * time.Millisecond

// RebuildFunc runs one full build.
type RebuildFunc func(ctx context.Context) error

// Watcher re-runs a build after source files change. Bursts of events within
// Debounce of each other trigger a single rebuild.
type Watcher struct {
	Dirs     []string
	Rebuild  RebuildFunc
	Logger   *zap.Logger
	Debounce time.Duration

	fw *fsnotify.Watcher
}

// Run watches Dirs recursively until ctx is done. Rebuild failures are logged
// and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	log := w.Logger
	if log == nil {
		log = zap.NewNop()
	}
	delay := w.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fw = fw
	defer fw.Close()

	for _, dir := range w.Dirs {
		if err := w.addTree(dir); err != nil {
			return err
		}
	}

	log.Info("watching for file changes", zap.Strings("dirs", w.Dirs))
	debounce := time.NewTicker(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	trigger := func() {
		select {
		case <-debounce.C:
		default:
		}
		debounce.Reset(delay)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						log.Warn("watch new directory", zap.String("dir", ev.Name), zap.Error(err))
					}
				}
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				log.Debug("change", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
				trigger()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		case <-debounce.C:
			debounce.Stop()
			start := time.Now()
			if err := w.Rebuild(ctx); err != nil {
				log.Error("rebuild failed", zap.Error(err))
				continue
			}
			log.Info("rebuilt", zap.Duration("took", time.Since(start)))
		}
	}
}

func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fw.Add(p)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
