package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/fsnotify/fsnotify"
)

// Watch processes the existing contents of the input directory, then keeps
// processing supported files as they are created or rewritten until ctx is
// cancelled. A file is handled once no write to it has been seen for the
// debounce interval.
func (r *Runner) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(r.opts.InputDir); err != nil {
		return fmt.Errorf("watching directory %s: %w", r.opts.InputDir, err)
	}

	if _, err := r.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(r.opts.Debounce / 2)
	defer ticker.Stop()

	r.log.Info("watching for documents", "input", r.opts.InputDir)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Base(event.Name)
			if !parser.IsSupportedExtension(name) {
				continue
			}
			pending[name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("watcher error", "error", err)

		case now := <-ticker.C:
			threshold := now.Add(-r.opts.Debounce)
			for name, last := range pending {
				if last.After(threshold) {
					continue
				}
				delete(pending, name)
				t := r.newTask(name)
				if _, err := os.Stat(t.path); err != nil {
					r.log.Debug("skipping vanished file", "file", name, "error", err)
					continue
				}
				if r.opts.Progress != nil {
					r.opts.Progress(1, 1, name)
				}
				r.handle(ctx, t)
			}
		}
	}
}
