package export

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch starts an fsnotify watcher on the vault root and re-exports
// changed notes until ctx is cancelled. Handling is strictly sequential:
// one event's export completes before the next is dequeued.
//
// Only write events trigger exports; hidden files (dot prefix) and
// editor backups (trailing ~) are ignored. Watcher delivery errors are
// logged and the loop continues; export I/O failures are fatal and
// returned. New directories created at runtime are added to the watch
// list, since fsnotify watches are not recursive.
func Watch(ctx context.Context, e *Exporter, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	root := e.vault.Root()
	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					} else {
						logger.Debug("watcher: watching new dir", slog.String("path", absPath))
					}
					continue
				}
			}

			if ev.Op&fsnotify.Write == 0 {
				continue
			}

			name := filepath.Base(absPath)
			if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
				continue
			}
			if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
				continue
			}

			rel, inRoot := e.vault.Rel(absPath)
			if !inRoot {
				continue
			}
			if expErr := e.ExportFile(rel); expErr != nil {
				return expErr
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its non-hidden subdirectories to
// the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		return w.Add(path)
	})
}
