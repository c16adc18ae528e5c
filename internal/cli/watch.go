package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events a single save produces.
const watchDebounce = 200 * time.Millisecond

// watch calls run after each change to one of paths until ctx is done.
// Parent directories are watched so editors that save by rename still
// trigger a run. Runs are sequential; a failed run is logged and watching
// continues.
func (c *CLI) watch(ctx context.Context, paths []string, run func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	printInfo("Watching %d file(s), press Ctrl+C to stop", len(targets))

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, targets) {
				continue
			}
			c.Logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			fire = time.After(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)
		case <-fire:
			fire = nil
			if err := run(ctx); err != nil {
				c.Logger.Error("render failed", "err", err)
			}
		}
	}
}

// relevant reports whether ev touches one of the watched files in a way
// that can change its content.
func relevant(ev fsnotify.Event, targets map[string]bool) bool {
	abs, err := filepath.Abs(ev.Name)
	if err != nil || !targets[abs] {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
