package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports directories whose listing changed. Bursts of events are
// collected for the debounce interval and each directory is reported once.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	changes  chan string
	logger   *slog.Logger
}

// NewWatcher creates a watcher. A nil logger discards output.
func NewWatcher(debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{
		fs:       fw,
		debounce: debounce,
		changes:  make(chan string, 16),
		logger:   logger,
	}, nil
}

// Add starts watching dir.
func (w *Watcher) Add(dir string) error {
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	return nil
}

// Remove stops watching dir.
func (w *Watcher) Remove(dir string) error {
	return w.fs.Remove(dir)
}

// Changes delivers changed directory paths. It is closed when Run returns.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Run processes events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.changes)

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// content writes do not change a listing
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[filepath.Dir(ev.Name)] = struct{}{}
			if fire == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			}

		case <-fire:
			fire = nil
			dirs := make([]string, 0, len(pending))
			for dir := range pending {
				dirs = append(dirs, dir)
			}
			clear(pending)
			slices.Sort(dirs)
			for _, dir := range dirs {
				select {
				case w.changes <- dir:
				case <-ctx.Done():
					return
				}
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
