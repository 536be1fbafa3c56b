package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reloads a games file into a Holder when it changes on disk. A file
// that fails to parse is logged and the previous catalog stays live.
type Watcher struct {
	Path        string
	DefaultSlug string
	Holder      *Holder
	Log         zerolog.Logger

	// Debounce collapses the burst of events editors emit for one save.
	Debounce time.Duration

	// OnReload, when set, runs after each successful swap.
	OnReload func()
}

// Run blocks until ctx is done. It watches the containing directory so that
// atomic rename-over saves are seen.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("games watch: %w", err)
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("games watch init: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("games watch add %s: %w", filepath.Dir(abs), err)
	}
	w.Log.Info().Str("path", abs).Msg("watching games file")

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() { w.reload(abs) })
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.Log.Debug().Str("op", ev.Op.String()).Msg("games file changed; scheduling reload")
				schedule()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Log.Warn().Err(err).Msg("games watch error")
		}
	}
}

func (w *Watcher) reload(path string) {
	c, err := Load(path, w.DefaultSlug)
	if err != nil {
		w.Log.Error().Err(err).Str("path", path).Msg("games reload failed; keeping previous catalog")
		return
	}
	w.Holder.Store(c)
	w.Log.Info().Int("games", c.Len()).Str("default", c.Default().Slug).Msg("games reloaded")
	if w.OnReload != nil {
		w.OnReload()
	}
}
