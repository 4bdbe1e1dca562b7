package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/fsutil"
)

// debounceDelay is how long the watcher waits for more changes before
// rebuilding, so a burst of editor writes triggers a single run.
const debounceDelay = 300 * time.Millisecond

// Watch builds once, then rebuilds whenever a model file changes. A
// failed build keeps the watcher alive. The context stops the loop.
func (a *App) Watch(ctx context.Context) error {
	logger := a.logger.With("component", "watch")
	ctx = ctxlog.WithLogger(ctx, logger)

	if _, err := a.Run(ctx); err != nil {
		logger.Error("Build failed.", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error starting file watcher: %w", err)
	}
	defer watcher.Close()

	if err := a.addWatches(watcher); err != nil {
		return err
	}
	logger.Info("👀 Watching for model changes.", "paths", a.cfg.Paths, "debounce", debounceDelay)

	ticker := time.NewTicker(debounceDelay)
	defer ticker.Stop()

	pending := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, fsutil.ModelExt) {
				// A new directory needs its own watch so files created
				// inside it later are seen.
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := addDirWatches(watcher, event.Name); err != nil {
							logger.Warn("Failed to watch new directory.", "path", event.Name, "error", err)
						}
					}
				}
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				logger.Debug("Model file changed.", "path", event.Name, "op", event.Op.String())
				pending = true
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error.", "error", err)

		case <-ticker.C:
			if !pending {
				continue
			}
			pending = false
			if _, err := a.Run(ctx); err != nil {
				logger.Error("Rebuild failed.", "error", err)
			}
		}
	}
}

// addWatches registers every configured path with the watcher.
func (a *App) addWatches(w *fsnotify.Watcher) error {
	paths := a.cfg.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	for _, path := range paths {
		root := watchRoot(path)
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("error watching %s: %w", path, err)
		}
		if !info.IsDir() {
			// Editors replace files on save, so the parent directory is
			// watched rather than the file itself.
			root = filepath.Dir(root)
			info, err = os.Stat(root)
			if err != nil {
				return fmt.Errorf("error watching %s: %w", path, err)
			}
		}
		if err := addDirWatches(w, root); err != nil {
			return fmt.Errorf("error watching %s: %w", path, err)
		}
	}
	return nil
}

// watchRoot reduces a path to something the watcher can stat. A glob
// pattern watches from the directory prefix before its first wildcard.
func watchRoot(path string) string {
	i := strings.IndexAny(path, "*?[")
	if i < 0 {
		return path
	}
	dir := filepath.Dir(path[:i])
	if dir == "" {
		return "."
	}
	return dir
}

// addDirWatches walks root and watches every directory under it, skipping
// hidden ones.
func addDirWatches(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if base := filepath.Base(path); strings.HasPrefix(base, ".") && path != root {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
